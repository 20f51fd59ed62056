package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pedidos/internal/cart"
	"pedidos/internal/domain"
	"pedidos/internal/report"
	orderrepo "pedidos/internal/repository/order"
	ordersvc "pedidos/internal/service/order"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// ClientCatalog is the read surface the handlers need for clientes.
type ClientCatalog interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

// ProductCatalog is the read surface the handlers need for productos.
type ProductCatalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// OrderService is the capture/review surface, satisfied by
// service/order.Service.
type OrderService interface {
	Checkout(ctx context.Context, c *cart.Cart, clienteID int64) (int64, error)
	Preview(c *cart.Cart) decimal.Decimal
	Review(ctx context.Context, f orderrepo.Filter) ([]ordersvc.OrderView, error)
	ChangeStatus(ctx context.Context, id int64, estado domain.Status) error
	RepairStatuses(ctx context.Context) (int64, error)
	Ticket(ctx context.Context, id int64) (report.Ticket, error)
}

// Deps are the wired collaborators for the route handlers.
type Deps struct {
	Clients  ClientCatalog
	Products ProductCatalog
	Orders   OrderService
	Sessions *cart.Sessions
	Zone     *time.Location
}

// New builds a Server with the pedidos routes.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
