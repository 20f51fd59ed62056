package client

import (
	"context"

	"pedidos/internal/domain"
)

// Repository exposes read access to the clientes catalog. Clients are
// created and managed outside this service.
type Repository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}
