package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/bbaxromov14/eduhelper/internal/models"
	"github.com/go-chi/chi/v5"
)

// questionView is a question as a student sees it, without the answer.
type questionView struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Points  int      `json:"points"`
}

type testView struct {
	ID              string         `json:"id"`
	LessonID        *string        `json:"lesson_id,omitempty"`
	Title           string         `json:"title"`
	PassingScore    int            `json:"passing_score"`
	AttemptsAllowed int            `json:"attempts_allowed"`
	Questions       []questionView `json:"questions"`
}

func newTestView(t *models.Test) testView {
	v := testView{
		ID:              t.ID,
		LessonID:        t.LessonID,
		Title:           t.Title,
		PassingScore:    t.PassingScore,
		AttemptsAllowed: t.AttemptsAllowed,
		Questions:       make([]questionView, len(t.Questions)),
	}
	for i, q := range t.Questions {
		v.Questions[i] = questionView{Prompt: q.Prompt, Options: q.Options, Points: q.Points}
	}
	return v
}

func (s *Server) handleTest(w http.ResponseWriter, r *http.Request) {
	test, err := s.Tests.GetTest(r.Context(), chi.URLParam(r, "testID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newTestView(test))
}

func (s *Server) handleAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := s.Tests.ListAttempts(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "testID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if attempts == nil {
		attempts = []models.TestAttempt{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"attempts": attempts})
}

func (s *Server) handleBestAttempt(w http.ResponseWriter, r *http.Request) {
	best, err := s.Tests.BestAttempt(r.Context(), userFromContext(r.Context()), chi.URLParam(r, "testID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, best)
}

type submitRequest struct {
	Answers models.Answers `json:"answers"`
}

// handleSubmitAttempt grades {"answers": {"0": 2, "1": null}}. When no
// attempts are left the error carries the best attempt so far.
func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userFromContext(ctx)
	testID := chi.URLParam(r, "testID")

	var req submitRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImportBytes)).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	res, err := s.Tests.Submit(ctx, userID, testID, req.Answers)
	if errors.HasCode(err, errors.ErrCodeAttemptsExhausted) {
		var details any
		if best, bestErr := s.Tests.BestAttempt(ctx, userID, testID); bestErr == nil {
			details = map[string]any{"best_attempt": best}
		} else {
			logger.FromContext(ctx).Warn("failed to load best attempt: %v", bestErr)
		}
		writeError(w, r, err, details)
		return
	}
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}
