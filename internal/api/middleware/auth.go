package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// Authenticate attaches the caller's identity when a valid bearer token is present.
// Requests without a token pass through anonymously; a bad token is rejected with 401.
func Authenticate(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Ctx(r.Context()).Debug().Err(err).Msg("rejected bearer token")
				writeError(w, apperrors.NewUnauthorizedError("invalid or expired token"))
				return
			}

			ctx := auth.WithIdentity(r.Context(), &auth.Identity{
				UserID: claims.UserID,
				Name:   claims.Name,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) == nil {
			writeError(w, apperrors.NewUnauthorizedError("authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := auth.IdentityFromContext(r.Context())
		if identity == nil {
			writeError(w, apperrors.NewUnauthorizedError("authentication required"))
			return
		}
		if !identity.IsAdmin() {
			writeError(w, apperrors.NewForbiddenError("admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
