package models

// LinkNA is the feed's sentinel for an article without a source link.
// Articles carrying it cannot be checked or summarized.
const LinkNA = "NA"

type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Link        string `json:"link"`
	SourceName  string `json:"source_name"`
}

// Group is a presentation grouping of articles as published in the feed.
type Group struct {
	GroupTitle string    `json:"group_title"`
	Articles   []Article `json:"articles"`
}

type ValidityState string

const (
	ValidityUnknown ValidityState = "unknown"
	ValidityValid   ValidityState = "valid"
	ValidityInvalid ValidityState = "invalid"
)

// Validity is the outcome of the most recent summarizability check for an
// article. Session-scoped scratch state, recomputed on demand.
type Validity struct {
	State  ValidityState `json:"state"`
	Reason string        `json:"reason,omitempty"`
}
