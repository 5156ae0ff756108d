package ports

import (
	"collecto-backend/internal/model"
	"context"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetProduct(ctx context.Context, product *model.Product) error
	GetProduct(ctx context.Context, productID int64) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
}
