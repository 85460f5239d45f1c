package middleware

import (
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/application/loaders"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
)

// LoadersMiddleware attaches fresh request-scoped dataloaders to every request
func LoadersMiddleware(products repositories.ProductRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := loaders.WithLoaders(r.Context(), loaders.NewLoaders(products))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
