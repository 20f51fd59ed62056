package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/clientes", listClientes(deps))
	router.GET("/productos", listProductos(deps))

	carritos := router.Group("/carritos")
	{
		carritos.POST("", createCarrito(deps))
		carritos.GET("/:id", getCarrito(deps))
		carritos.POST("/:id/lineas", addLinea(deps))
		carritos.PUT("/:id/lineas/:index", updateLinea(deps))
		carritos.DELETE("/:id/lineas", removeLineas(deps))
		carritos.GET("/:id/resumen", resumenCarrito(deps))
		carritos.POST("/:id/confirmacion", requestConfirmacion(deps))
		carritos.DELETE("/:id/confirmacion", cancelConfirmacion(deps))
		carritos.POST("/:id/pedido", confirmPedido(deps))
	}

	pedidos := router.Group("/pedidos")
	{
		pedidos.GET("", listPedidos(deps))
		pedidos.PUT("/:id/estado", setEstado(deps))
		pedidos.GET("/:id/ticket", ticketText(deps))
		pedidos.GET("/:id/ticket.xlsx", ticketExcel(deps))
	}

	router.POST("/mantenimiento/reparar-estados", repararEstados(deps))

	return router
}
