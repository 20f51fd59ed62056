package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pedidos/internal/cart"
	"pedidos/internal/domain"
	"pedidos/internal/units"
)

type lineaRequest struct {
	ProductoID int64 `json:"productoId"`
	// Cantidad is accepted as any scalar; non-numeric input coerces to zero
	// and is then rejected like any non-positive quantity.
	Cantidad interface{} `json:"cantidad"`
	Unidad   string      `json:"unidad"`
	Sabor    string      `json:"sabor"`
}

type lineasRemoveRequest struct {
	Indices []int `json:"indices"`
}

type confirmRequest struct {
	ClienteID int64 `json:"clienteId" binding:"required"`
}

func sessionCart(c *gin.Context, deps Deps) (*cart.Cart, bool) {
	cc, ok := deps.Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sesion de captura no encontrada"})
		return nil, false
	}
	return cc, true
}

func createCarrito(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := deps.Sessions.Create()
		c.JSON(http.StatusCreated, gin.H{"id": id, "estado": cart.StateEditing})
	}
}

func getCarrito(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":      c.Param("id"),
			"estado":  cc.State(),
			"lineas":  cc.Lines(),
			"totalKg": deps.Orders.Preview(cc),
		})
	}
}

func addLinea(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		var req lineaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de peticion invalido"})
			return
		}
		producto, err := deps.Products.GetByID(c.Request.Context(), req.ProductoID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "producto no encontrado"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo validar el producto"})
			return
		}
		linea, err := cc.AddLine(producto.ID, producto.Nombre, units.Quantity(req.Cantidad), req.Unidad, req.Sabor)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "la cantidad debe ser mayor que cero"})
			return
		}
		c.JSON(http.StatusCreated, linea)
	}
}

func updateLinea(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "indice invalido"})
			return
		}
		var req lineaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de peticion invalido"})
			return
		}
		switch err := cc.UpdateLine(index, units.Quantity(req.Cantidad), req.Unidad, req.Sabor); {
		case errors.Is(err, cart.ErrIndexOutOfRange):
			c.JSON(http.StatusNotFound, gin.H{"error": "linea no encontrada"})
		case errors.Is(err, domain.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "la cantidad debe ser mayor que cero"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar la linea"})
		default:
			c.JSON(http.StatusOK, gin.H{"lineas": cc.Lines()})
		}
	}
}

func removeLineas(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		var req lineasRemoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cuerpo de peticion invalido"})
			return
		}
		if err := cc.RemoveLines(req.Indices); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "indices fuera de rango"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"lineas": cc.Lines()})
	}
}

func resumenCarrito(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"resumen": cc.Summarize(),
			"totalKg": deps.Orders.Preview(cc),
		})
	}
}

func requestConfirmacion(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		if err := cc.RequestCheckout(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no hay productos en el carrito"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"estado": cc.State()})
	}
}

func cancelConfirmacion(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		cc.CancelCheckout()
		c.JSON(http.StatusOK, gin.H{"estado": cc.State()})
	}
}

func confirmPedido(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cc, ok := sessionCart(c, deps)
		if !ok {
			return
		}
		var req confirmRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "clienteId requerido"})
			return
		}
		if _, err := deps.Clients.GetByID(c.Request.Context(), req.ClienteID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cliente no encontrado"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo validar el cliente"})
			return
		}
		pedidoID, err := deps.Orders.Checkout(c.Request.Context(), cc, req.ClienteID)
		if err != nil {
			switch {
			case errors.Is(err, cart.ErrNotPending), errors.Is(err, cart.ErrEmpty):
				c.JSON(http.StatusConflict, gin.H{"error": "no hay confirmacion pendiente"})
			default:
				// The cart keeps its lines; the user may retry the save.
				c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo guardar el pedido"})
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"pedidoId": pedidoID})
	}
}
