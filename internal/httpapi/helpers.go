package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"birdquiz/internal/content"
	"birdquiz/internal/quiz"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeLoadError(w http.ResponseWriter, err error) {
	var loadErr *content.LoadError
	if errors.As(err, &loadErr) || errors.Is(err, content.ErrNoQuestions) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: quiz.LoadFailedMessage})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}
