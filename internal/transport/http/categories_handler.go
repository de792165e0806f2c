package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"quizzler/internal/app"
	"quizzler/internal/domain"
)

// CategoriesHandler serves GET /api/categories for clients that render the
// category picker before opening a websocket.
func CategoriesHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		categories, err := service.Categories(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, domain.ErrNetworkFailure) {
				status = http.StatusServiceUnavailable
			}
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(errorPayload{Code: errorCode(err), Message: err.Error()})
			return
		}
		_ = json.NewEncoder(w).Encode(categories)
	}
}
