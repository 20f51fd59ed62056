package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pedidos/internal/aggregate"
	"pedidos/internal/cart"
	"pedidos/internal/domain"
	"pedidos/internal/report"
	orderrepo "pedidos/internal/repository/order"
	ordersvc "pedidos/internal/service/order"
)

type stubCatalog struct {
	clientes  []domain.Client
	productos []domain.Product
}

func (s *stubCatalog) List(_ context.Context) ([]domain.Client, error) {
	return s.clientes, nil
}

func (s *stubCatalog) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	for _, c := range s.clientes {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubProducts struct {
	productos []domain.Product
}

func (s *stubProducts) List(_ context.Context) ([]domain.Product, error) {
	return s.productos, nil
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range s.productos {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubOrders struct {
	checkoutID    int64
	checkoutErr   error
	checkoutCalls int
	lastFilter    orderrepo.Filter
	views         []ordersvc.OrderView
	statusErr     error
	repaired      int64
	ticket        report.Ticket
	ticketErr     error
}

func (s *stubOrders) Checkout(_ context.Context, c *cart.Cart, _ int64) (int64, error) {
	if c.State() != cart.StatePendingConfirmation {
		return 0, cart.ErrNotPending
	}
	s.checkoutCalls++
	if s.checkoutErr != nil {
		return 0, s.checkoutErr
	}
	_ = c.MarkCommitted()
	return s.checkoutID, nil
}

func (s *stubOrders) Preview(c *cart.Cart) decimal.Decimal {
	return aggregate.TotalKilograms(aggregate.FromCartLines(c.Lines()))
}

func (s *stubOrders) Review(_ context.Context, f orderrepo.Filter) ([]ordersvc.OrderView, error) {
	s.lastFilter = f
	return s.views, nil
}

func (s *stubOrders) ChangeStatus(_ context.Context, _ int64, estado domain.Status) error {
	if !estado.Valid() {
		return domain.ErrInvalidStatus
	}
	return s.statusErr
}

func (s *stubOrders) RepairStatuses(_ context.Context) (int64, error) {
	return s.repaired, nil
}

func (s *stubOrders) Ticket(_ context.Context, _ int64) (report.Ticket, error) {
	return s.ticket, s.ticketErr
}

func testDeps(orders *stubOrders) Deps {
	return Deps{
		Clients: &stubCatalog{clientes: []domain.Client{
			{ID: 3, Nombre: "Abarrotes La Central", Alias: "Central"},
		}},
		Products: &stubProducts{productos: []domain.Product{
			{ID: 7, Nombre: "Palomitas", UnidadBase: "50 gr"},
		}},
		Orders:   orders,
		Sessions: cart.NewSessions(),
		Zone:     time.UTC,
	}
}

func testRouter(orders *stubOrders) (http.Handler, Deps) {
	deps := testDeps(orders)
	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, deps), deps
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	h, _ := testRouter(&stubOrders{})
	w := doJSON(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", w.Code)
	}
}

func TestCaptureFlow(t *testing.T) {
	orders := &stubOrders{checkoutID: 21}
	h, _ := testRouter(orders)

	w := doJSON(t, h, http.MethodPost, "/carritos", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /carritos = %d, want 201", w.Code)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	base := "/carritos/" + created.ID

	// Zero quantity is rejected with no state change.
	w = doJSON(t, h, http.MethodPost, base+"/lineas", `{"productoId":7,"cantidad":0,"unidad":"50 gr"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("zero quantity = %d, want 400", w.Code)
	}

	// Unknown product is rejected.
	w = doJSON(t, h, http.MethodPost, base+"/lineas", `{"productoId":99,"cantidad":1,"unidad":"Kg"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown product = %d, want 400", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, base+"/lineas", `{"productoId":7,"cantidad":2,"unidad":"50 gr","sabor":"Queso"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add linea = %d, want 201: %s", w.Code, w.Body.String())
	}

	// Confirm before requesting a checkout is a conflict.
	w = doJSON(t, h, http.MethodPost, base+"/pedido", `{"clienteId":3}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("confirm without request = %d, want 409", w.Code)
	}
	if orders.checkoutCalls != 0 {
		t.Fatalf("checkout reached service without pending confirmation")
	}

	w = doJSON(t, h, http.MethodPost, base+"/confirmacion", "")
	if w.Code != http.StatusOK {
		t.Fatalf("request confirmacion = %d, want 200", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, base+"/pedido", `{"clienteId":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("confirm = %d, want 201: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "21") {
		t.Fatalf("response missing pedido id: %s", w.Body.String())
	}
	if orders.checkoutCalls != 1 {
		t.Fatalf("checkout called %d times, want 1", orders.checkoutCalls)
	}

	// Re-sending the confirm cannot double-insert.
	w = doJSON(t, h, http.MethodPost, base+"/pedido", `{"clienteId":3}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("second confirm = %d, want 409", w.Code)
	}
	if orders.checkoutCalls != 1 {
		t.Fatalf("second confirm reached the repository")
	}
}

func TestListPedidosValidatesRange(t *testing.T) {
	h, _ := testRouter(&stubOrders{})
	w := doJSON(t, h, http.MethodGet, "/pedidos?from=2026-03-12&to=2026-03-10", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("inverted range = %d, want 400", w.Code)
	}
}

func TestListPedidosPassesFilter(t *testing.T) {
	orders := &stubOrders{}
	h, _ := testRouter(orders)
	w := doJSON(t, h, http.MethodGet, "/pedidos?from=2026-03-10&to=2026-03-10&clienteId=3&estado=listo", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d, want 200: %s", w.Code, w.Body.String())
	}
	f := orders.lastFilter
	if f.From.Format("2006-01-02") != "2026-03-10" || f.To.Format("2006-01-02") != "2026-03-10" {
		t.Fatalf("date range not passed: %+v", f)
	}
	if f.ClienteID == nil || *f.ClienteID != 3 {
		t.Fatalf("clienteId not passed: %+v", f.ClienteID)
	}
	if f.Estado == nil || *f.Estado != domain.StatusListo {
		t.Fatalf("estado not passed: %+v", f.Estado)
	}
}

func TestSetEstadoRejectsUnknownValue(t *testing.T) {
	h, _ := testRouter(&stubOrders{})
	w := doJSON(t, h, http.MethodPut, "/pedidos/5/estado", `{"estado":"enviado"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("estado enviado = %d, want 400", w.Code)
	}
	w = doJSON(t, h, http.MethodPut, "/pedidos/5/estado", `{"estado":"listo"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("estado listo = %d, want 200", w.Code)
	}
}

func TestTicketEndpoint(t *testing.T) {
	orders := &stubOrders{ticket: report.Ticket{
		PedidoID: 9,
		Cliente:  "Abarrotes La Central",
		Alias:    "Central",
		Fecha:    "2026-03-10 09:30",
		TotalKg:  decimal.RequireFromString("0.1"),
	}}
	h, _ := testRouter(orders)

	w := doJSON(t, h, http.MethodGet, "/pedidos/9/ticket", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ticket = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Total kilos: 0.100 kg") {
		t.Fatalf("ticket body missing total: %s", w.Body.String())
	}

	w = doJSON(t, h, http.MethodGet, "/pedidos/9/ticket.xlsx", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ticket.xlsx = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheet") {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestTicketNotFound(t *testing.T) {
	h, _ := testRouter(&stubOrders{ticketErr: domain.ErrNotFound})
	w := doJSON(t, h, http.MethodGet, "/pedidos/99/ticket", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing ticket = %d, want 404", w.Code)
	}
}

func TestRepararEstados(t *testing.T) {
	h, _ := testRouter(&stubOrders{repaired: 2})
	w := doJSON(t, h, http.MethodPost, "/mantenimiento/reparar-estados", "")
	if w.Code != http.StatusOK {
		t.Fatalf("reparar = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"reparados":2`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
