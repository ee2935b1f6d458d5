package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/scoopsfinder/scoopsd/internal/identity"
	"github.com/scoopsfinder/scoopsd/internal/models"
	"github.com/scoopsfinder/scoopsd/internal/pipeline"
	"github.com/scoopsfinder/scoopsd/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

// sessionFor resolves the request's bearer token to a user session. With
// identity disabled every request shares the anonymous session.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) (*store.Session, identity.User, bool) {
	token := bearerToken(r)
	user, err := s.identity.Resolve(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Not logged in"})
		return nil, identity.User{}, false
	}
	return s.sessions.Get(user.Name), user, true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	return strings.TrimPrefix(header, "Bearer ")
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	_, user, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	s.identity.NotifyLogin(user)
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	_, user, ok := s.sessionFor(w, r)
	if !ok {
		return
	}
	s.sessions.Remove(user.Name)
	s.identity.NotifyLogout()
	w.WriteHeader(http.StatusNoContent)
}

// feedHandler loads the feed into the session and returns the groups.
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	groups, err := s.feed.FetchGroups(r.Context())
	if err != nil {
		log.Printf("Failed to fetch feed: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to fetch articles"})
		return
	}

	session.SetGroups(groups)
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) savedHandler(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, session.Saved())
	case http.MethodPost:
		var article models.Article
		if err := json.NewDecoder(r.Body).Decode(&article); err != nil || article.Title == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing article"})
			return
		}
		saved := session.ToggleSave(article)
		writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
	default:
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	}
}

// validityHandler recomputes validity for every saved article, sequentially,
// and returns the per-title annotations.
func (s *Server) validityHandler(w http.ResponseWriter, r *http.Request) {
	session, _, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	validity := session.CheckSaved(r.Context(), s.pipeline)
	writeJSON(w, http.StatusOK, validity)
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	session, _, ok := s.sessionFor(w, r)
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing title"})
		return
	}

	summary, err := session.Summarize(r.Context(), s.pipeline, req.Title)
	if err != nil {
		status, resp := summaryError(err)
		log.Printf("Failed to summarize %q: %v", req.Title, err)
		writeJSON(w, status, resp)
		return
	}

	s.notifier.SummaryProduced(req.Title, summary)
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func summaryError(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, store.ErrNotSaved):
		return http.StatusNotFound, errorResponse{Error: "Article is not saved"}
	case errors.Is(err, store.ErrNoLink), errors.Is(err, pipeline.ErrNotSummarizable),
		errors.Is(err, pipeline.ErrNoContent), errors.Is(err, pipeline.ErrInvalidURL):
		return http.StatusBadRequest, errorResponse{Error: "Article is not summarizable"}
	case errors.Is(err, pipeline.ErrFetch):
		return http.StatusBadGateway, errorResponse{Error: "Failed to fetch article content"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "Failed to summarize the article"}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
