package middleware

import (
	"log/slog"
	"net/http"

	"github.com/projectsetu/setu-api/internal/api/httpx"
)

func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic", "err", rec, "request_id", RequestIDFrom(r.Context()))
				httpx.WriteJSON(w, http.StatusInternalServerError,
					httpx.Envelope{Error: "Server Error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
