package product

import (
	"context"

	"pedidos/internal/domain"
)

// Repository exposes read access to the productos catalog.
type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}
