package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"team-attendance/backend/global"
)

const RequestIDKey ctxKey = 2

// Correlation tags each request with an X-Request-ID (honoring one supplied
// by a proxy) and puts a request-scoped logger into the context.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		reqLogger := global.Logger.With().Str("request_id", requestID).Logger()
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = reqLogger.WithContext(ctx)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
