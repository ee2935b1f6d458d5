// Package store holds per-user reader state: the fetched feed, the saved
// subset, validity annotations, and the most recent summary. State lives in
// memory only and dies with the session.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/scoopsfinder/scoopsd/internal/models"
	"github.com/scoopsfinder/scoopsd/internal/pipeline"
)

var (
	ErrNotSaved = errors.New("article is not in the saved set")
	ErrNoLink   = errors.New("article has no source link")
)

// Checker runs the summarize endpoint's two request modes in-process.
type Checker interface {
	Check(ctx context.Context, rawURL string) (pipeline.Outcome, error)
	Summarize(ctx context.Context, rawURL string) (string, error)
}

// Session is one user's reader state. Saved articles are keyed by title;
// two articles sharing a title collide and the saved set treats them as one.
type Session struct {
	mu          sync.Mutex
	groups      []models.Group
	saved       []models.Article
	validity    map[string]models.Validity
	lastSummary string
}

func NewSession() *Session {
	return &Session{
		validity: make(map[string]models.Validity),
	}
}

func (s *Session) SetGroups(groups []models.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = groups
}

func (s *Session) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groups
}

// ToggleSave adds the article to the saved set, or removes it if an article
// with the same title is already saved. It reports whether the article is
// saved after the call.
func (s *Session) ToggleSave(article models.Article) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, saved := range s.saved {
		if saved.Title == article.Title {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			delete(s.validity, article.Title)
			return false
		}
	}
	s.saved = append(s.saved, article)
	return true
}

func (s *Session) Saved() []models.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Article, len(s.saved))
	copy(out, s.saved)
	return out
}

func (s *Session) IsSaved(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, saved := range s.saved {
		if saved.Title == title {
			return true
		}
	}
	return false
}

// CheckSaved recomputes validity for every saved article, one sequential
// check per article in saved order. The whole validity map is replaced when
// the pass finishes, so overlapping passes resolve as last-response-wins.
func (s *Session) CheckSaved(ctx context.Context, checker Checker) map[string]models.Validity {
	saved := s.Saved()

	validity := make(map[string]models.Validity, len(saved))
	for _, article := range saved {
		validity[article.Title] = checkOne(ctx, checker, article)
	}

	s.mu.Lock()
	s.validity = validity
	s.mu.Unlock()

	return validity
}

func checkOne(ctx context.Context, checker Checker, article models.Article) models.Validity {
	if article.Link == models.LinkNA {
		return models.Validity{State: models.ValidityInvalid, Reason: "Article has no source link"}
	}

	outcome, err := checker.Check(ctx, article.Link)
	if err != nil {
		return models.Validity{State: models.ValidityInvalid, Reason: "Invalid source link"}
	}
	if !outcome.Valid {
		return models.Validity{State: models.ValidityInvalid, Reason: outcome.Reason}
	}
	return models.Validity{State: models.ValidityValid}
}

// Validity returns the annotation from the most recent check pass, or the
// unknown state when the article has not been checked.
func (s *Session) Validity(title string) models.Validity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.validity[title]; ok {
		return v
	}
	return models.Validity{State: models.ValidityUnknown}
}

// Summarize produces a summary for one saved article and records it as the
// session's current summary, replacing the previous one.
func (s *Session) Summarize(ctx context.Context, checker Checker, title string) (string, error) {
	var target *models.Article
	for _, saved := range s.Saved() {
		if saved.Title == title {
			a := saved
			target = &a
			break
		}
	}
	if target == nil {
		return "", ErrNotSaved
	}
	if target.Link == models.LinkNA {
		return "", ErrNoLink
	}

	summary, err := checker.Summarize(ctx, target.Link)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.lastSummary = summary
	s.mu.Unlock()

	return summary, nil
}

func (s *Session) LastSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSummary
}
