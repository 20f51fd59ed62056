// Package cart holds the pre-commit staging area for one in-progress order
// and the confirmation state machine that gates the single repository write.
package cart

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"pedidos/internal/domain"
)

var (
	// ErrEmpty indicates a checkout was requested on a cart with no lines.
	ErrEmpty = errors.New("cart is empty")
	// ErrNotPending indicates a confirm without a prior checkout request.
	ErrNotPending = errors.New("no checkout pending confirmation")
	// ErrIndexOutOfRange indicates a line index past the end of the cart.
	ErrIndexOutOfRange = errors.New("line index out of range")
)

// State is the position of a cart in the staging-to-commit workflow.
type State string

const (
	StateEditing             State = "editing"
	StatePendingConfirmation State = "pending_confirmation"
	StateCommitted           State = "committed"
)

// Line is one draft entry. Insertion order is preserved for display.
type Line struct {
	ProductoID     int64           `json:"productoId"`
	ProductoNombre string          `json:"productoNombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	Sabor          string          `json:"sabor,omitempty"`
}

// Cart is the session-scoped staging store. All mutation happens here; the
// only path to the database is the order service's confirm step.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	state State
}

func New() *Cart {
	return &Cart{state: StateEditing}
}

// AddLine appends a draft line. Non-positive quantities are rejected with no
// state change. Any pending confirmation is dropped back to editing.
func (c *Cart) AddLine(productoID int64, productoNombre string, cantidad decimal.Decimal, unidad, sabor string) (Line, error) {
	if cantidad.LessThanOrEqual(decimal.Zero) {
		return Line{}, domain.ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reopen()
	line := Line{
		ProductoID:     productoID,
		ProductoNombre: productoNombre,
		Cantidad:       cantidad,
		Unidad:         unidad,
		Sabor:          sabor,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateLine replaces the quantity, unit and flavor of the line at index.
// It never reorders.
func (c *Cart) UpdateLine(index int, cantidad decimal.Decimal, unidad, sabor string) error {
	if cantidad.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.lines) {
		return ErrIndexOutOfRange
	}
	c.reopen()
	c.lines[index].Cantidad = cantidad
	c.lines[index].Unidad = unidad
	c.lines[index].Sabor = sabor
	return nil
}

// RemoveLines deletes the lines at the given indices. Removal runs from the
// highest index down so earlier removals do not shift later ones.
func (c *Cart) RemoveLines(indices []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[int]bool, len(indices))
	ordered := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(c.lines) {
			return ErrIndexOutOfRange
		}
		if !seen[i] {
			seen[i] = true
			ordered = append(ordered, i)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))
	c.reopen()
	for _, i := range ordered {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return nil
}

// Clear empties the cart and returns it to editing.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.state = StateEditing
}

// Lines returns a copy of the draft lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Summarize pivots the cart into product -> unit -> summed quantity. Display
// only; totals in kilograms come from the aggregate package.
func (c *Cart) Summarize() map[string]map[string]decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]map[string]decimal.Decimal)
	for _, l := range c.lines {
		byUnit, ok := out[l.ProductoNombre]
		if !ok {
			byUnit = make(map[string]decimal.Decimal)
			out[l.ProductoNombre] = byUnit
		}
		byUnit[l.Unidad] = byUnit[l.Unidad].Add(l.Cantidad)
	}
	return out
}

// RequestCheckout moves an editing cart with at least one line to
// pending-confirmation. It touches no repository.
func (c *Cart) RequestCheckout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return ErrEmpty
	}
	c.state = StatePendingConfirmation
	return nil
}

// CancelCheckout returns a pending cart to editing without losing lines.
func (c *Cart) CancelCheckout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePendingConfirmation {
		c.state = StateEditing
	}
}

// MarkCommitted records a successful persist: the cart is emptied and the
// pending flag cleared so a repeated confirm cannot re-issue the insert.
func (c *Cart) MarkCommitted() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePendingConfirmation {
		return ErrNotPending
	}
	c.lines = nil
	c.state = StateCommitted
	return nil
}

// reopen drops a stale workflow state when the cart is edited again. Callers
// hold c.mu.
func (c *Cart) reopen() {
	c.state = StateEditing
}
