package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleTicket() Ticket {
	return Ticket{
		PedidoID: 42,
		Cliente:  "Abarrotes La Central",
		Alias:    "Central",
		Fecha:    "2026-03-10 09:30",
		Estado:   "en proceso",
		Lines: []Line{
			{Producto: "Palomitas", Cantidad: decimal.RequireFromString("2"), Unidad: "50 gr", Sabor: "Queso"},
			{Producto: "Cacahuates", Cantidad: decimal.RequireFromString("1.5"), Unidad: "Kg"},
		},
		TotalKg: decimal.RequireFromString("1.6"),
	}
}

func TestTextTicketLayout(t *testing.T) {
	out := Text(sampleTicket())

	for _, want := range []string{
		"Pedido ID: 42",
		"Cliente: Abarrotes La Central (Central)",
		"Fecha: 2026-03-10 09:30",
		"Palomitas",
		"Queso",
		"Total kilos: 1.600 kg",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ticket missing %q:\n%s", want, out)
		}
	}
}

func TestTextUsesPrecomputedTotal(t *testing.T) {
	// The formatter must print whatever total it is handed, never rerun the
	// conversion table.
	tk := sampleTicket()
	tk.TotalKg = decimal.RequireFromString("123.456")
	out := Text(tk)
	if !strings.Contains(out, "Total kilos: 123.456 kg") {
		t.Fatalf("formatter recomputed the total:\n%s", out)
	}
}

func TestExcelProducesWorkbook(t *testing.T) {
	var buf bytes.Buffer
	if err := Excel(sampleTicket(), &buf); err != nil {
		t.Fatalf("Excel: %v", err)
	}
	// xlsx is a zip archive; check the magic bytes and that something was
	// actually written.
	b := buf.Bytes()
	if len(b) < 4 || b[0] != 'P' || b[1] != 'K' {
		t.Fatalf("output does not look like an xlsx archive (%d bytes)", len(b))
	}
}
