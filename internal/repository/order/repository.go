package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pedidos/internal/domain"
)

// LineInput is one cart line at commit time.
type LineInput struct {
	ProductoID int64
	Cantidad   decimal.Decimal
	Unidad     string
	Sabor      string
}

// Filter narrows a review listing. From and To are local calendar dates in
// the configured zone; both are inclusive. Nil pointers mean no filter.
type Filter struct {
	From      time.Time
	To        time.Time
	ClienteID *int64
	Estado    *domain.Status
}

// Repository persists confirmed carts and serves the review queries.
type Repository interface {
	// Create inserts one pedido plus all detalle_pedido rows in a single
	// transaction and returns the new order id. All-or-nothing.
	Create(ctx context.Context, clienteID int64, lines []LineInput) (int64, error)
	// Get fetches one order header with its client fields.
	Get(ctx context.Context, id int64) (*domain.Order, error)
	// List returns orders whose local calendar date falls in the filter
	// range, ordered by fecha then id ascending.
	List(ctx context.Context, f Filter) ([]domain.Order, error)
	// LinesFor batch-fetches lines for the given orders in one query.
	LinesFor(ctx context.Context, ids []int64) (map[int64][]domain.OrderLine, error)
	// SetStatus applies a status transition. The target must be one of the
	// enumerated values.
	SetStatus(ctx context.Context, id int64, estado domain.Status) error
	// RepairInvalidStatuses rewrites null, blank or out-of-set estados to
	// "en proceso" and reports how many rows changed. Idempotent.
	RepairInvalidStatuses(ctx context.Context) (int64, error)
}
