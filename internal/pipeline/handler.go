package pipeline

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

const (
	ActionCheck     = "check"
	ActionSummarize = "summarize"
)

// request tolerates the historical field-name variants for the URL. targetURL
// is the one canonical shape the rest of the pipeline sees.
type request struct {
	URL         string `json:"url"`
	SourceLink  string `json:"sourceLink"`
	SourceLink2 string `json:"source_link"`
	Action      string `json:"action"`
}

func (r request) targetURL() string {
	switch {
	case r.URL != "":
		return r.URL
	case r.SourceLink != "":
		return r.SourceLink
	default:
		return r.SourceLink2
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// Handler adapts the pipeline to HTTP per the summarize endpoint contract.
type Handler struct {
	pipeline *Pipeline
}

func NewHandler(p *Pipeline) *Handler {
	return &Handler{pipeline: p}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing url or action"})
		return
	}
	if req.targetURL() == "" || req.Action == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing url or action"})
		return
	}

	switch req.Action {
	case ActionCheck:
		h.handleCheck(w, r, req.targetURL())
	case ActionSummarize:
		h.handleSummarize(w, r, req.targetURL())
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid action"})
	}
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request, rawURL string) {
	outcome, err := h.pipeline.Check(r.Context(), rawURL)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid URL"})
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request, rawURL string) {
	summary, err := h.pipeline.Summarize(r.Context(), rawURL)
	if err != nil {
		status, resp := summarizeError(err)
		log.Printf("summarize %s failed: %v", rawURL, err)
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: summary})
}

func summarizeError(err error) (int, errorResponse) {
	switch {
	case errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest, errorResponse{Error: "Invalid URL"}
	case errors.Is(err, ErrNotSummarizable):
		return http.StatusBadRequest, errorResponse{Error: "URL is not summarizable", Details: err.Error()}
	case errors.Is(err, ErrNoContent):
		return http.StatusBadRequest, errorResponse{Error: "No extractable text found at URL"}
	case errors.Is(err, ErrFetch):
		return http.StatusBadGateway, errorResponse{Error: "Failed to fetch article content"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "Failed to summarize the article"}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
