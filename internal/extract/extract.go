// Package extract turns raw HTML into cleaned text suitable as model input.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors name the elements stripped before any text is collected.
const noiseSelectors = "script, style, noscript, iframe, nav, header, footer, form, aside"

// Text parses the HTML and collects visible text: headings first, then
// paragraphs, concatenated with single spaces and whitespace-normalized.
// An empty result means the page had no extractable content; that is a
// negative outcome for the caller, not an error here.
func Text(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(noiseSelectors).Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	var parts []string
	collect := func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	doc.Find("h1, h2, h3, h4, h5, h6").Each(collect)
	doc.Find("p").Each(collect)

	return normalize(strings.Join(parts, " ")), nil
}

// TruncateWords keeps the first limit whitespace-delimited tokens of text.
// The result is a prefix of the input; no sentence-boundary awareness.
func TruncateWords(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
