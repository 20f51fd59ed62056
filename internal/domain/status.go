package domain

import "strings"

// Status is the lifecycle state of a persisted order. The string values are
// the exact forms stored in pedidos.estado.
type Status string

const (
	StatusEnProceso Status = "en proceso"
	StatusListo     Status = "listo"
	StatusCancelado Status = "cancelado"
)

// Statuses lists every valid status in selector order.
var Statuses = []Status{StatusEnProceso, StatusListo, StatusCancelado}

// Valid reports whether s is one of the three enumerated values. No
// normalization: the storage boundary is case- and whitespace-sensitive.
func (s Status) Valid() bool {
	switch s {
	case StatusEnProceso, StatusListo, StatusCancelado:
		return true
	}
	return false
}

// NormalizeStatus maps a raw stored value to a valid status. Null, blank and
// out-of-set values become "en proceso". This is the same rule the repair
// pass applies in bulk.
func NormalizeStatus(raw *string) Status {
	if raw == nil {
		return StatusEnProceso
	}
	s := Status(*raw)
	if strings.TrimSpace(*raw) == "" || !s.Valid() {
		return StatusEnProceso
	}
	return s
}
