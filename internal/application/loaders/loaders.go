package loaders

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

type ctxKey string

const loadersKey ctxKey = "dataloaders"

// Loaders contains the request-scoped dataloaders
type Loaders struct {
	ProductLoader *dataloader.Loader[string, *entities.Product]
}

// NewLoaders creates a new instance of Loaders
func NewLoaders(productRepo repositories.ProductRepository) *Loaders {
	return &Loaders{
		ProductLoader: dataloader.NewBatchedLoader(func(ctx context.Context, keys []string) []*dataloader.Result[*entities.Product] {
			results := make([]*dataloader.Result[*entities.Product], len(keys))
			products, err := productRepo.GetByIDs(ctx, keys)

			productMap := make(map[string]*entities.Product)
			if err == nil {
				for _, p := range products {
					productMap[p.ID] = p
				}
			}

			for i, key := range keys {
				if err != nil {
					results[i] = &dataloader.Result[*entities.Product]{Error: err}
				} else if p, ok := productMap[key]; ok {
					results[i] = &dataloader.Result[*entities.Product]{Data: p}
				} else {
					results[i] = &dataloader.Result[*entities.Product]{Error: apperrors.NewNotFoundError("product " + key + " not found")}
				}
			}
			return results
		}, dataloader.WithWait[string, *entities.Product](2*time.Millisecond)),
	}
}

// LoadProducts resolves ids in one batch; the result is aligned with ids
func (l *Loaders) LoadProducts(ctx context.Context, ids []string) ([]*entities.Product, []error) {
	thunks := make([]dataloader.Thunk[*entities.Product], len(ids))
	for i, id := range ids {
		thunks[i] = l.ProductLoader.Load(ctx, id)
	}

	products := make([]*entities.Product, len(ids))
	errs := make([]error, len(ids))
	for i, thunk := range thunks {
		products[i], errs[i] = thunk()
	}
	return products, errs
}

// For returns the loaders attached to ctx, or nil
func For(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// WithLoaders returns a new context with the loaders attached
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}
