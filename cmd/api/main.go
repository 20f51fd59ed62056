package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"pedidos/internal/cart"
	"pedidos/internal/config"
	"pedidos/internal/db"
	"pedidos/internal/httpserver"
	clientrepo "pedidos/internal/repository/client"
	orderrepo "pedidos/internal/repository/order"
	productrepo "pedidos/internal/repository/product"
	ordersvc "pedidos/internal/service/order"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	zone, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		logger.Fatalf("load time zone %q: %v", cfg.TimeZone, err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	clientRepo := clientrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger, cfg.TimeZone)
	orderService := ordersvc.New(orderRepo, logger, zone)
	sessions := cart.NewSessions()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Clients:  clientRepo,
		Products: productRepo,
		Orders:   orderService,
		Sessions: sessions,
		Zone:     zone,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	var scheduler *cron.Cron
	if cfg.RepairSchedule != "" {
		scheduler = cron.New(cron.WithLocation(zone))
		_, err := scheduler.AddFunc(cfg.RepairSchedule, func() {
			if _, err := orderService.RepairStatuses(context.Background()); err != nil {
				logger.Printf("scheduled status repair failed: %v", err)
			}
		})
		if err != nil {
			logger.Fatalf("invalid repair schedule %q: %v", cfg.RepairSchedule, err)
		}
		scheduler.Start()
		logger.Printf("status repair scheduled: %s", cfg.RepairSchedule)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
