package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"pedidos/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func addLine(t *testing.T, c *Cart, producto string, qty string, unidad string) {
	t.Helper()
	if _, err := c.AddLine(1, producto, dec(qty), unidad, ""); err != nil {
		t.Fatalf("AddLine(%s): %v", producto, err)
	}
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	for _, qty := range []string{"0", "-1"} {
		_, err := c.AddLine(1, "Palomitas", dec(qty), "Kg", "")
		if !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("AddLine(qty=%s) err = %v, want ErrInvalidQuantity", qty, err)
		}
	}
	if c.Len() != 0 {
		t.Fatalf("cart length = %d after rejected adds, want 0", c.Len())
	}
}

func TestAddLinePreservesInsertionOrder(t *testing.T) {
	c := New()
	addLine(t, c, "Palomitas", "2", "50 gr")
	addLine(t, c, "Cacahuates", "1", "Kg")
	addLine(t, c, "Chicharrones", "3", "Medio")

	lines := c.Lines()
	want := []string{"Palomitas", "Cacahuates", "Chicharrones"}
	for i, name := range want {
		if lines[i].ProductoNombre != name {
			t.Fatalf("line %d = %s, want %s", i, lines[i].ProductoNombre, name)
		}
	}
}

func TestUpdateLineInPlace(t *testing.T) {
	c := New()
	addLine(t, c, "Palomitas", "2", "50 gr")
	addLine(t, c, "Cacahuates", "1", "Kg")

	if err := c.UpdateLine(0, dec("5"), "100 gr", "Queso"); err != nil {
		t.Fatalf("UpdateLine: %v", err)
	}
	lines := c.Lines()
	if !lines[0].Cantidad.Equal(dec("5")) || lines[0].Unidad != "100 gr" || lines[0].Sabor != "Queso" {
		t.Fatalf("line 0 not updated: %+v", lines[0])
	}
	if lines[1].ProductoNombre != "Cacahuates" {
		t.Fatalf("update reordered lines: %+v", lines)
	}

	if err := c.UpdateLine(5, dec("1"), "Kg", ""); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("UpdateLine(5) err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveLinesDescending(t *testing.T) {
	c := New()
	addLine(t, c, "Palomitas", "1", "Kg")
	addLine(t, c, "Cacahuates", "2", "Kg")
	addLine(t, c, "Chicharrones", "3", "Kg")

	if err := c.RemoveLines([]int{0, 2}); err != nil {
		t.Fatalf("RemoveLines: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].ProductoNombre != "Cacahuates" {
		t.Fatalf("remaining lines = %+v, want only Cacahuates", lines)
	}
}

func TestRemoveLinesDuplicateAndInvalidIndices(t *testing.T) {
	c := New()
	addLine(t, c, "Palomitas", "1", "Kg")
	addLine(t, c, "Cacahuates", "2", "Kg")

	if err := c.RemoveLines([]int{1, 1}); err != nil {
		t.Fatalf("RemoveLines duplicate: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("length = %d after duplicate removal, want 1", c.Len())
	}
	if err := c.RemoveLines([]int{3}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("RemoveLines(3) err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestSummarizePivot(t *testing.T) {
	c := New()
	addLine(t, c, "Palomitas", "2", "50 gr")
	addLine(t, c, "Palomitas", "3", "50 gr")
	addLine(t, c, "Palomitas", "1", "Kg")
	addLine(t, c, "Cacahuates", "4", "Medio")

	pivot := c.Summarize()
	if got := pivot["Palomitas"]["50 gr"]; !got.Equal(dec("5")) {
		t.Errorf("Palomitas/50 gr = %s, want 5", got)
	}
	if got := pivot["Palomitas"]["Kg"]; !got.Equal(dec("1")) {
		t.Errorf("Palomitas/Kg = %s, want 1", got)
	}
	if got := pivot["Cacahuates"]["Medio"]; !got.Equal(dec("4")) {
		t.Errorf("Cacahuates/Medio = %s, want 4", got)
	}
	if !pivot["Cacahuates"]["Kg"].IsZero() {
		t.Errorf("missing cell should sum to zero")
	}
}

func TestCheckoutWorkflow(t *testing.T) {
	c := New()
	if err := c.RequestCheckout(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("RequestCheckout on empty cart err = %v, want ErrEmpty", err)
	}

	addLine(t, c, "Palomitas", "2", "50 gr")
	if err := c.RequestCheckout(); err != nil {
		t.Fatalf("RequestCheckout: %v", err)
	}
	if c.State() != StatePendingConfirmation {
		t.Fatalf("state = %s, want pending", c.State())
	}

	c.CancelCheckout()
	if c.State() != StateEditing {
		t.Fatalf("state after cancel = %s, want editing", c.State())
	}
	if c.Len() != 1 {
		t.Fatalf("cancel lost cart lines")
	}

	if err := c.MarkCommitted(); !errors.Is(err, ErrNotPending) {
		t.Fatalf("MarkCommitted while editing err = %v, want ErrNotPending", err)
	}

	if err := c.RequestCheckout(); err != nil {
		t.Fatalf("RequestCheckout: %v", err)
	}
	if err := c.MarkCommitted(); err != nil {
		t.Fatalf("MarkCommitted: %v", err)
	}
	if c.State() != StateCommitted || c.Len() != 0 {
		t.Fatalf("commit should clear cart, state=%s len=%d", c.State(), c.Len())
	}

	// A second confirm must not be able to re-issue the write.
	if err := c.MarkCommitted(); !errors.Is(err, ErrNotPending) {
		t.Fatalf("second MarkCommitted err = %v, want ErrNotPending", err)
	}
}

func TestEditingReopensPendingCart(t *testing.T) {
	c := New()
	addLine(t, c, "Palomitas", "2", "50 gr")
	if err := c.RequestCheckout(); err != nil {
		t.Fatalf("RequestCheckout: %v", err)
	}
	addLine(t, c, "Cacahuates", "1", "Kg")
	if c.State() != StateEditing {
		t.Fatalf("state after edit = %s, want editing", c.State())
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	id, c := s.Create()
	if id == "" || c == nil {
		t.Fatalf("Create returned empty session")
	}
	got, ok := s.Get(id)
	if !ok || got != c {
		t.Fatalf("Get(%s) did not return the created cart", id)
	}
	id2, c2 := s.Create()
	if id2 == id || c2 == c {
		t.Fatalf("sessions must be distinct")
	}
	s.Delete(id)
	if _, ok := s.Get(id); ok {
		t.Fatalf("Get after Delete should miss")
	}
}
