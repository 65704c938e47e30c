package health

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Handler returns an HTTP handler serving the indicator's result as JSON.
// UP is served with 200 and DOWN with 503.
func Handler(ind Indicator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h := ind.Health(ctx)

		w.Header().Set("Content-Type", "application/json")
		if h.Status == StatusUp {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(h); err != nil {
			log.Printf("Error encoding health response: %v", err)
		}
	}
}
