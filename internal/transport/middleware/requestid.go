package middleware

import (
	"net/http"

	"github.com/ErdhyErnando/moneta/pkg/logger"

	"github.com/google/uuid"
)

// RequestID tags every request with a trace id, propagated through the
// context logger and echoed back in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
