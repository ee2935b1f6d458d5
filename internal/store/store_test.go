package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/scoopsfinder/scoopsd/internal/models"
	"github.com/scoopsfinder/scoopsd/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	outcomes  map[string]pipeline.Outcome
	summaries map[string]string
	checked   []string
	err       error
}

func (f *fakeChecker) Check(ctx context.Context, rawURL string) (pipeline.Outcome, error) {
	f.checked = append(f.checked, rawURL)
	if f.err != nil {
		return pipeline.Outcome{}, f.err
	}
	if outcome, ok := f.outcomes[rawURL]; ok {
		return outcome, nil
	}
	return pipeline.Outcome{Valid: true}, nil
}

func (f *fakeChecker) Summarize(ctx context.Context, rawURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summaries[rawURL], nil
}

func article(title, link string) models.Article {
	return models.Article{
		Title:      title,
		Link:       link,
		Category:   "US Tech",
		SourceName: "Example Wire",
	}
}

func TestToggleSave(t *testing.T) {
	s := NewSession()

	assert.True(t, s.ToggleSave(article("First", "https://example.com/1")))
	assert.True(t, s.IsSaved("First"))

	assert.False(t, s.ToggleSave(article("First", "https://example.com/1")))
	assert.False(t, s.IsSaved("First"))
	assert.Empty(t, s.Saved())
}

func TestToggleSaveTitleCollision(t *testing.T) {
	s := NewSession()

	// Identity is the title, so a second article with the same title
	// unsaves the first instead of being added.
	assert.True(t, s.ToggleSave(article("Same Title", "https://example.com/a")))
	assert.False(t, s.ToggleSave(article("Same Title", "https://example.com/b")))
	assert.Empty(t, s.Saved())
}

func TestSavedPreservesOrder(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("A", "https://example.com/a"))
	s.ToggleSave(article("B", "https://example.com/b"))
	s.ToggleSave(article("C", "https://example.com/c"))

	saved := s.Saved()
	require.Len(t, saved, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{saved[0].Title, saved[1].Title, saved[2].Title})
}

func TestCheckSavedSequentialInOrder(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("A", "https://example.com/a"))
	s.ToggleSave(article("B", "https://example.com/b"))

	checker := &fakeChecker{}
	validity := s.CheckSaved(context.Background(), checker)

	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, checker.checked)
	assert.Equal(t, models.ValidityValid, validity["A"].State)
	assert.Equal(t, models.ValidityValid, validity["B"].State)
	assert.Equal(t, models.ValidityValid, s.Validity("A").State)
}

func TestCheckSavedRecordsReasons(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("Video", "https://youtube.com/watch?v=x"))
	s.ToggleSave(article("Unlinked", models.LinkNA))

	checker := &fakeChecker{
		outcomes: map[string]pipeline.Outcome{
			"https://youtube.com/watch?v=x": {Valid: false, Reason: pipeline.ReasonVideo},
		},
	}
	validity := s.CheckSaved(context.Background(), checker)

	assert.Equal(t, models.ValidityInvalid, validity["Video"].State)
	assert.Equal(t, pipeline.ReasonVideo, validity["Video"].Reason)
	assert.Equal(t, models.ValidityInvalid, validity["Unlinked"].State)
	// The sentinel link never reaches the checker.
	assert.Equal(t, []string{"https://youtube.com/watch?v=x"}, checker.checked)
}

func TestValidityUnknownBeforeCheck(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("A", "https://example.com/a"))

	assert.Equal(t, models.ValidityUnknown, s.Validity("A").State)
	assert.Equal(t, models.ValidityUnknown, s.Validity("never saved").State)
}

func TestSummarize(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("A", "https://example.com/a"))

	checker := &fakeChecker{summaries: map[string]string{
		"https://example.com/a": "Summary of A.",
	}}

	summary, err := s.Summarize(context.Background(), checker, "A")
	require.NoError(t, err)
	assert.Equal(t, "Summary of A.", summary)
	assert.Equal(t, "Summary of A.", s.LastSummary())
}

func TestSummarizeOverwritesPrevious(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("A", "https://example.com/a"))
	s.ToggleSave(article("B", "https://example.com/b"))

	checker := &fakeChecker{summaries: map[string]string{
		"https://example.com/a": "Summary of A.",
		"https://example.com/b": "Summary of B.",
	}}

	_, err := s.Summarize(context.Background(), checker, "A")
	require.NoError(t, err)
	_, err = s.Summarize(context.Background(), checker, "B")
	require.NoError(t, err)
	assert.Equal(t, "Summary of B.", s.LastSummary())
}

func TestSummarizeErrors(t *testing.T) {
	s := NewSession()
	s.ToggleSave(article("Unlinked", models.LinkNA))

	_, err := s.Summarize(context.Background(), &fakeChecker{}, "not saved")
	assert.ErrorIs(t, err, ErrNotSaved)

	_, err = s.Summarize(context.Background(), &fakeChecker{}, "Unlinked")
	assert.ErrorIs(t, err, ErrNoLink)

	s.ToggleSave(article("A", "https://example.com/a"))
	_, err = s.Summarize(context.Background(), &fakeChecker{err: errors.New("provider down")}, "A")
	assert.Error(t, err)
	assert.Empty(t, s.LastSummary())
}

func TestSessionsGetCreatesPerUser(t *testing.T) {
	sessions := NewSessions(time.Hour)
	defer sessions.Close()

	alice := sessions.Get("alice")
	bob := sessions.Get("bob")
	assert.NotSame(t, alice, bob)
	assert.Same(t, alice, sessions.Get("alice"))
}

func TestSessionsRemove(t *testing.T) {
	sessions := NewSessions(time.Hour)
	defer sessions.Close()

	first := sessions.Get("alice")
	first.ToggleSave(article("A", "https://example.com/a"))
	sessions.Remove("alice")

	again := sessions.Get("alice")
	assert.Empty(t, again.Saved())
}

func TestSessionsRetentionSweep(t *testing.T) {
	sessions := NewSessions(10 * time.Millisecond)
	defer sessions.Close()

	stale := sessions.Get("alice")
	stale.ToggleSave(article("A", "https://example.com/a"))

	time.Sleep(20 * time.Millisecond)
	sessions.performCleanup()

	fresh := sessions.Get("alice")
	assert.NotSame(t, stale, fresh)
	assert.Empty(t, fresh.Saved())
}

func TestSessionsStats(t *testing.T) {
	sessions := NewSessions(time.Hour)
	defer sessions.Close()

	sessions.Get("alice")
	sessions.Get("bob")

	stats := sessions.Stats()
	assert.Equal(t, 2, stats["active_sessions"])
}
