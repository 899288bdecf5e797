package api

import (
	"net/http"
	"strconv"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Courses.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"courses": courses})
}

func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.Courses.Get(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, course)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("limit must be a number"))
			return
		}
		limit = n
	}

	entries, err := s.Leaderboard.Top(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"leaderboard": entries})
}
