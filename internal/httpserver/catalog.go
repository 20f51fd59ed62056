package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listClientes(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientes, err := deps.Clients.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron cargar los clientes"})
			return
		}
		c.JSON(http.StatusOK, clientes)
	}
}

func listProductos(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		productos, err := deps.Products.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron cargar los productos"})
			return
		}
		c.JSON(http.StatusOK, productos)
	}
}
