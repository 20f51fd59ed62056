package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a confirmed purchase request. Fecha is stored in UTC; rendering
// converts through the configured local zone. Lines are fixed at creation.
type Order struct {
	ID            int64     `json:"id"`
	ClienteID     int64     `json:"clienteId"`
	ClienteNombre string    `json:"clienteNombre"`
	ClienteAlias  string    `json:"clienteAlias"`
	Fecha         time.Time `json:"fecha"`
	Estado        Status    `json:"estado"`
}

// OrderLine is one product entry within a persisted order. Immutable after
// commit.
type OrderLine struct {
	PedidoID       int64           `json:"pedidoId"`
	ProductoID     int64           `json:"productoId"`
	ProductoNombre string          `json:"productoNombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	Sabor          string          `json:"sabor,omitempty"`
}
