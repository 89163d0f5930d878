package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pet-tracker/internal/platform/logger"

	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestID asigna un id único por request y lo expone en X-Request-ID.
// Si el cliente ya trae uno, se respeta.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// RequestLogger loguea cada request resuelto, con su request id para
// correlación. Debug a propósito: el tráfico normal no es ruido de info.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)

			log.Debug("request", map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"request_id":  GetRequestID(r.Context()),
				"duration_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
