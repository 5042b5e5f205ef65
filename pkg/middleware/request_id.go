package middleware

import (
	"net/http"

	"movie-booking/pkg/utils"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

// RequestID wraps chi's RequestID: a caller supplied X-Request-ID is kept
// unless it is too long, and the id is echoed on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := chimiddleware.GetReqID(r.Context())
			if requestID == "" || len(requestID) > maxRequestIDLen {
				requestID = utils.GenerateUUIDString()
			}

			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(utils.SetRequestIDContext(r.Context(), requestID)))
		})

		return chimiddleware.RequestID(echo)
	}
}
