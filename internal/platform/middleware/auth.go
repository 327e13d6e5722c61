package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "foodbridge/pkg/domain-errors"
	"foodbridge/pkg/domain"
	"foodbridge/pkg/platform/httputil"
	"foodbridge/pkg/requestcontext"
)

// TokenValidator verifies a bearer token and returns the actor it encodes.
type TokenValidator interface {
	ValidateToken(token string) (domain.Actor, error)
}

// RequireAuth rejects requests without a valid bearer token and injects the
// verified actor into the request context for downstream services.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(r.Context()),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
				return
			}

			actor, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			ctx := requestcontext.WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
