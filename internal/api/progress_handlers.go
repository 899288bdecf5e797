package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/normalize"
	"github.com/go-chi/chi/v5"
)

const maxImportBytes = 1 << 20

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Progress.GetProgress(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, stats)
}

type completeRequest struct {
	CompletedAt string `json:"completed_at"`
}

// handleCompleteLesson accepts an optional {"completed_at": "..."} body;
// without one the lesson is completed now.
func (s *Server) handleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(io.LimitReader(r.Body, maxImportBytes)).Decode(&req); err != nil && err != io.EOF {
			handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
			return
		}
	}

	var at time.Time
	if req.CompletedAt != "" {
		t, err := normalize.ParseTime(req.CompletedAt)
		if err != nil {
			handleError(w, r, errors.NewValidationError("completed_at", err.Error()))
			return
		}
		at = t
	}

	lessonID := chi.URLParam(r, "lessonID")
	if err := s.Lessons.Complete(r.Context(), userFromContext(r.Context()), lessonID, at); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportProgress(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("request body too large"))
		return
	}
	raw, err := normalize.DecodeProgress(body)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	res, err := s.Lessons.Import(r.Context(), userFromContext(r.Context()), raw)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
