// Package report renders printable tickets from an order payload prepared by
// the order service. The payload carries the precomputed kilograms total;
// this package never converts units itself, so the printed total always
// matches the one shown on screen.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/shopspring/decimal"
)

// Line is one (product, quantity, unit, flavor) tuple in ticket order.
type Line struct {
	Producto string
	Cantidad decimal.Decimal
	Unidad   string
	Sabor    string
}

// Ticket is the only payload the formatter consumes.
type Ticket struct {
	PedidoID int64
	Cliente  string
	Alias    string
	Fecha    string
	Estado   string
	Lines    []Line
	TotalKg  decimal.Decimal
}

// Text renders a plain-text ticket: header, line table, kilograms footer.
func Text(t Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido ID: %d\n", t.PedidoID)
	fmt.Fprintf(&b, "Cliente: %s (%s)\n", t.Cliente, t.Alias)
	fmt.Fprintf(&b, "Fecha: %s\n", t.Fecha)
	if t.Estado != "" {
		fmt.Fprintf(&b, "Estado: %s\n", t.Estado)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-30s %10s %-12s %-20s\n", "Producto", "Cantidad", "Unidad", "Sabor")
	for _, l := range t.Lines {
		fmt.Fprintf(&b, "%-30s %10s %-12s %-20s\n", l.Producto, l.Cantidad.String(), l.Unidad, l.Sabor)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total kilos: %s kg\n", t.TotalKg.StringFixed(3))
	return b.String()
}

// Excel writes the ticket as a one-sheet xlsx workbook.
func Excel(t Ticket, w io.Writer) error {
	f := excelize.NewFile()
	const sheet = "Sheet1"

	f.SetCellValue(sheet, "A1", "Pedido ID")
	f.SetCellValue(sheet, "B1", t.PedidoID)
	f.SetCellValue(sheet, "A2", "Cliente")
	f.SetCellValue(sheet, "B2", fmt.Sprintf("%s (%s)", t.Cliente, t.Alias))
	f.SetCellValue(sheet, "A3", "Fecha")
	f.SetCellValue(sheet, "B3", t.Fecha)
	f.SetCellValue(sheet, "A4", "Estado")
	f.SetCellValue(sheet, "B4", t.Estado)

	header := []string{"Producto", "Cantidad", "Unidad", "Sabor"}
	for i, h := range header {
		f.SetCellValue(sheet, cell(i, 6), h)
	}
	row := 7
	for _, l := range t.Lines {
		f.SetCellValue(sheet, cell(0, row), l.Producto)
		f.SetCellValue(sheet, cell(1, row), l.Cantidad.String())
		f.SetCellValue(sheet, cell(2, row), l.Unidad)
		f.SetCellValue(sheet, cell(3, row), l.Sabor)
		row++
	}
	f.SetCellValue(sheet, cell(0, row+1), "Total kilos")
	f.SetCellValue(sheet, cell(1, row+1), t.TotalKg.StringFixed(3))

	return f.Write(w)
}

func cell(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
