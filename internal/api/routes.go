package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/courses", s.handleCourses)
	r.Get("/courses/{courseID}", s.handleCourse)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/achievements", s.handleCatalog)

	r.Group(func(r chi.Router) {
		r.Use(userMiddleware)

		r.Get("/me/progress", s.handleProgress)
		r.Post("/me/progress/import", s.handleImportProgress)
		r.Post("/me/lessons/{lessonID}/complete", s.handleCompleteLesson)
		r.Get("/me/achievements", s.handleAchievements)
		r.Post("/me/achievements/sync", s.handleSyncAchievements)

		r.Get("/tests/{testID}", s.handleTest)
		r.Get("/tests/{testID}/attempts", s.handleAttempts)
		r.Post("/tests/{testID}/attempts", s.handleSubmitAttempt)
		r.Get("/tests/{testID}/attempts/best", s.handleBestAttempt)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNoRoute(r))
	})
	return r
}
