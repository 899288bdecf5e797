package api

import (
	"net/http"

	"github.com/bbaxromov14/eduhelper/internal/models"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"achievements": s.Achievements.Catalog()})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.Achievements.List(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"achievements": statuses})
}

func (s *Server) handleSyncAchievements(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.Achievements.Sync(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if unlocked == nil {
		unlocked = []models.AchievementRule{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"unlocked": unlocked})
}
