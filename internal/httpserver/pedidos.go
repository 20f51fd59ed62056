package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pedidos/internal/domain"
	"pedidos/internal/report"
	orderrepo "pedidos/internal/repository/order"
)

type estadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

// parseFilter reads from/to/clienteId/estado query params. Dates are local
// calendar dates in the configured zone; both default to today.
func parseFilter(c *gin.Context, deps Deps) (orderrepo.Filter, error) {
	today := time.Now().In(deps.Zone)
	f := orderrepo.Filter{From: today, To: today}

	if v := c.Query("from"); v != "" {
		from, err := time.ParseInLocation("2006-01-02", v, deps.Zone)
		if err != nil {
			return f, errors.New("fecha 'from' invalida")
		}
		f.From = from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.ParseInLocation("2006-01-02", v, deps.Zone)
		if err != nil {
			return f, errors.New("fecha 'to' invalida")
		}
		f.To = to
	}
	if f.From.Format("2006-01-02") > f.To.Format("2006-01-02") {
		return f, errors.New("la fecha de inicio no puede ser mayor que la fecha final")
	}
	if v := c.Query("clienteId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("clienteId invalido")
		}
		f.ClienteID = &id
	}
	if v := c.Query("estado"); v != "" {
		estado := domain.Status(v)
		if !estado.Valid() {
			return f, errors.New("estado invalido")
		}
		f.Estado = &estado
	}
	return f, nil
}

func listPedidos(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := parseFilter(c, deps)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		views, err := deps.Orders.Review(c.Request.Context(), f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron cargar los pedidos"})
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

func setEstado(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
			return
		}
		var req estadoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "estado requerido"})
			return
		}
		switch err := deps.Orders.ChangeStatus(c.Request.Context(), id, domain.Status(req.Estado)); {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "estado invalido"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "pedido no encontrado"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar el pedido"})
		default:
			c.JSON(http.StatusOK, gin.H{"id": id, "estado": req.Estado})
		}
	}
}

func fetchTicket(c *gin.Context, deps Deps) (report.Ticket, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return report.Ticket{}, false
	}
	t, err := deps.Orders.Ticket(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pedido no encontrado"})
			return report.Ticket{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el ticket"})
		return report.Ticket{}, false
	}
	return t, true
}

func ticketText(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := fetchTicket(c, deps)
		if !ok {
			return
		}
		c.String(http.StatusOK, report.Text(t))
	}
}

func ticketExcel(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := fetchTicket(c, deps)
		if !ok {
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pedido_%d.xlsx"`, t.PedidoID))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := report.Excel(t, c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el archivo"})
		}
	}
}

func repararEstados(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := deps.Orders.RepairStatuses(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo ejecutar la reparacion"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reparados": n})
	}
}
