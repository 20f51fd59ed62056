// Package order orchestrates the staging-to-commit workflow and the review
// queries. It owns the only code path that writes a confirmed cart to the
// repository.
package order

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"pedidos/internal/aggregate"
	"pedidos/internal/cart"
	"pedidos/internal/domain"
	"pedidos/internal/report"
	orderrepo "pedidos/internal/repository/order"
	"pedidos/internal/units"
)

type Service struct {
	repo   orderRepo
	logger *log.Logger
	zone   *time.Location
}

type orderRepo interface {
	Create(ctx context.Context, clienteID int64, lines []orderrepo.LineInput) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f orderrepo.Filter) ([]domain.Order, error)
	LinesFor(ctx context.Context, ids []int64) (map[int64][]domain.OrderLine, error)
	SetStatus(ctx context.Context, id int64, estado domain.Status) error
	RepairInvalidStatuses(ctx context.Context) (int64, error)
}

func New(r orderrepo.Repository, logger *log.Logger, zone *time.Location) *Service {
	return &Service{repo: r, logger: logger, zone: zone}
}

// OrderView is one order prepared for review: header, lines and the
// precomputed kilograms total.
type OrderView struct {
	domain.Order
	Lines   []domain.OrderLine `json:"lineas"`
	TotalKg decimal.Decimal    `json:"totalKg"`
}

// Checkout commits a pending cart as one new order. The cart must have been
// moved to pending-confirmation first; this is the only repository write in
// the workflow, so a re-rendered confirm cannot double-insert. On failure
// the cart keeps its lines and the user may retry.
func (s *Service) Checkout(ctx context.Context, c *cart.Cart, clienteID int64) (int64, error) {
	if c.State() != cart.StatePendingConfirmation {
		return 0, cart.ErrNotPending
	}
	staged := c.Lines()
	if len(staged) == 0 {
		return 0, cart.ErrEmpty
	}

	lines := make([]orderrepo.LineInput, 0, len(staged))
	for _, l := range staged {
		lines = append(lines, orderrepo.LineInput{
			ProductoID: l.ProductoID,
			Cantidad:   l.Cantidad,
			Unidad:     l.Unidad,
			Sabor:      l.Sabor,
		})
	}

	id, err := s.repo.Create(ctx, clienteID, lines)
	if err != nil {
		return 0, err
	}
	if err := c.MarkCommitted(); err != nil {
		// The order is persisted; a concurrent edit only means the cart
		// stays editable.
		s.warnf("cart not marked committed after pedido %d: %v", id, err)
	}
	return id, nil
}

// Preview totals the staged cart the same way Review totals persisted
// orders.
func (s *Service) Preview(c *cart.Cart) decimal.Decimal {
	weighted := aggregate.FromCartLines(c.Lines())
	s.noteUnknownUnits(0, weighted)
	return aggregate.TotalKilograms(weighted)
}

// Review lists orders matching the filter with their lines and totals.
func (s *Service) Review(ctx context.Context, f orderrepo.Filter) ([]OrderView, error) {
	orders, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	linesByOrder, err := s.repo.LinesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		lines := linesByOrder[o.ID]
		weighted := aggregate.FromOrderLines(lines)
		s.noteUnknownUnits(o.ID, weighted)
		views = append(views, OrderView{
			Order:   o,
			Lines:   lines,
			TotalKg: aggregate.TotalKilograms(weighted),
		})
	}
	return views, nil
}

// ChangeStatus moves an order to any of the enumerated statuses. The review
// UI exposes a free selector, so no transition graph is enforced beyond
// membership in the set.
func (s *Service) ChangeStatus(ctx context.Context, id int64, estado domain.Status) error {
	if !estado.Valid() {
		return domain.ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, id, estado)
}

// RepairStatuses rewrites invalid stored statuses to "en proceso".
func (s *Service) RepairStatuses(ctx context.Context) (int64, error) {
	n, err := s.repo.RepairInvalidStatuses(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.warnf("repaired %d pedidos with invalid estado", n)
	}
	return n, nil
}

// Ticket assembles the formatter payload for one order: the ordered line
// tuples plus the precomputed total. The formatter must not recompute
// conversions, so the total travels with the payload.
func (s *Service) Ticket(ctx context.Context, id int64) (report.Ticket, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return report.Ticket{}, err
	}
	linesByOrder, err := s.repo.LinesFor(ctx, []int64{id})
	if err != nil {
		return report.Ticket{}, err
	}
	lines := linesByOrder[id]
	weighted := aggregate.FromOrderLines(lines)
	s.noteUnknownUnits(id, weighted)

	t := report.Ticket{
		PedidoID: o.ID,
		Cliente:  o.ClienteNombre,
		Alias:    o.ClienteAlias,
		Fecha:    o.Fecha.In(s.zone).Format("2006-01-02 15:04"),
		Estado:   string(o.Estado),
		TotalKg:  aggregate.TotalKilograms(weighted),
	}
	for _, l := range lines {
		t.Lines = append(t.Lines, report.Line{
			Producto: l.ProductoNombre,
			Cantidad: l.Cantidad,
			Unidad:   l.Unidad,
			Sabor:    l.Sabor,
		})
	}
	return t, nil
}

// noteUnknownUnits logs unrecognized unit labels as data-quality anomalies.
// They weigh zero in the total but are never an error.
func (s *Service) noteUnknownUnits(pedidoID int64, lines []aggregate.WeightedLine) {
	for _, l := range lines {
		if !units.Known(l.Unidad) {
			s.warnf("unknown unit %q (pedido %d) contributes 0 kg", l.Unidad, pedidoID)
		}
	}
}

func (s *Service) warnf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
