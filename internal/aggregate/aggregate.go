// Package aggregate totals order lines in kilograms. Cart previews and
// persisted-order review both go through TotalKilograms so the displayed and
// printed totals can never drift apart.
package aggregate

import (
	"github.com/shopspring/decimal"

	"pedidos/internal/cart"
	"pedidos/internal/domain"
	"pedidos/internal/units"
)

// WeightedLine is the minimal shape the aggregator needs.
type WeightedLine struct {
	Cantidad decimal.Decimal
	Unidad   string
}

// TotalKilograms sums the kilograms-equivalent of every line. Empty input
// yields zero; unknown units contribute zero weight.
func TotalKilograms(lines []WeightedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(units.KilogramsFor(l.Cantidad, l.Unidad))
	}
	return total
}

// FromOrderLines adapts persisted lines for totaling.
func FromOrderLines(lines []domain.OrderLine) []WeightedLine {
	out := make([]WeightedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, WeightedLine{Cantidad: l.Cantidad, Unidad: l.Unidad})
	}
	return out
}

// FromCartLines adapts staged lines for totaling.
func FromCartLines(lines []cart.Line) []WeightedLine {
	out := make([]WeightedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, WeightedLine{Cantidad: l.Cantidad, Unidad: l.Unidad})
	}
	return out
}
