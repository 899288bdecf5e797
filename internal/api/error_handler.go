package api

import (
	"encoding/json"
	"net/http"

	"github.com/bbaxromov14/eduhelper/internal/errors"
	"github.com/bbaxromov14/eduhelper/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, err, nil)
}

// writeError renders err as {"error": {...}}. details, when set, is added
// to the body for the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, details any) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	switch {
	case appErr.Expected:
		log.Info("request declined: %v", appErr)
	case appErr.Status >= 500:
		log.Error("server error: %v", appErr)
	case appErr.Status >= 400:
		log.Warn("client error: %v", appErr)
	default:
		log.Debug("error: %v", appErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	if err := json.NewEncoder(w).Encode(map[string]errorBody{
		"error": {Code: appErr.Code, Message: appErr.Message, Details: details},
	}); err != nil {
		log.Error("failed to encode error response: %v", err)
	}
}

func errNoRoute(r *http.Request) *errors.AppError {
	return errors.NewNotFoundError("route", r.Method+" "+r.URL.Path)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
