package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// Summarizer produces a short natural-language summary of cleaned article
// text. The pipeline depends on this interface so the provider can be
// replaced with a test double.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

const (
	model     = openai.ChatModelGPT4oMini
	maxTokens = 500

	systemPrompt = "You are a news analyst writing for busy readers. " +
		"Summarize the article in exactly one paragraph of plain text, with no markdown or bullet points. " +
		"Start the first sentence with the article's date when one is present. " +
		"Use US spelling throughout, and write 'scoop' where the article says 'exclusive'."
)

type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient builds a client for the summarization provider. Extra
// request options are forwarded to the underlying client; tests use them to
// point at a local server.
func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("Summarize the following article content:\n\n" + text),
		},
		MaxTokens: openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return response.Choices[0].Message.Content, nil
}
