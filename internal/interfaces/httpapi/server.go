package httpapi

import (
	"fmt"
	"net/http"

	"github.com/pitchsidehq/pitchside/internal/platform/logging"
)

// NewRouter wires every HTTP route with the shared middleware chain.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, corsAllowedOrigins []string, internalJobToken string) http.Handler {
	mux := http.NewServeMux()

	registerHealthRoutes(mux, handler)
	registerLeagueRoutes(mux, handler)
	registerTeamRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerFavoriteRoutes(mux, handler, verifier)
	registerInternalSyncRoutes(mux, handler, internalJobToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"error", fmt.Sprintf("%v", rec),
					"method", r.Method,
					"path", r.URL.Path,
				)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
