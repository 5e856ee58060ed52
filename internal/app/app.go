package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logigraph-console/internal/config"
	"logigraph-console/internal/event"
	"logigraph-console/internal/handler"
	"logigraph-console/internal/logger"
	"logigraph-console/internal/metrics"
	"logigraph-console/internal/middleware"
	"logigraph-console/internal/router"
	"logigraph-console/internal/service"
	"logigraph-console/internal/session"
	"logigraph-console/internal/upstream"
	"logigraph-console/internal/websocket"
)

type App struct {
	server          *http.Server
	shutdownTimeout time.Duration
	cleanupFuncs    []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg))

	appHandler, cleanup := Build(cfg, nil)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appHandler,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		cleanupFuncs:    []func(){cleanup},
	}, nil
}

// newLogger installs the pretty handler at the configured LOG_LEVEL.
func newLogger(out io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(logger.NewPrettyHandler(out, &slog.HandlerOptions{
		Level: logger.ParseLevel(cfg.LogLevel),
	}))
}

// Build assembles the console's HTTP handler. base is the transport used to
// reach both backends; nil means http.DefaultTransport. The returned func
// stops the background hub.
func Build(cfg *config.Config, base http.RoundTripper) (http.Handler, func()) {
	m := metrics.New()

	store := session.NewCookieStore(cfg.SessionAuthKey, cfg.SessionEncryptKey, session.CookieOptions{
		Name:   cfg.SessionCookieName,
		MaxAge: cfg.SessionMaxAge,
		Secure: cfg.SessionCookieSecure,
	})
	sessions := middleware.NewSessions(store, m, slog.Default())

	backends := upstream.NewBackends(upstream.Options{
		CoreURL:     cfg.CoreAPIURL,
		TrackingURL: cfg.TrackingAPIURL,
		Timeout:     cfg.UpstreamTimeout,
		Base:        base,
		Metrics:     m,
	})

	authService := service.NewAuthService(backends.Auth)
	catalogService := service.NewCatalogService(backends.Catalog, backends.Customers, backends.Warehouses)
	dashboardService := service.NewDashboardService(backends.Dashboard, backends.Catalog, backends.Customers, backends.Warehouses, backends.Orders, cfg.LowStockThreshold)
	orderService := service.NewOrderService(backends.Orders, backends.Catalog, backends.Warehouses, backends.Inventory, cfg.InventoryFetchConcurrency)
	fleetService := service.NewFleetService(backends.Vehicles, backends.Inventory)
	routingService := service.NewRoutingService(backends.Warehouses, backends.Routing)
	trackingService := service.NewTrackingService(backends.Orders, backends.Tracking, cfg.TrackingPollInterval)

	bus := event.NewBus()
	hub := websocket.NewHub(bus, m, cfg.CORSOrigins)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	appRouter := router.New(cfg, sessions, m, router.Handlers{
		Session:  handler.NewSessionHandler(authService),
		Health:   handler.NewHealthHandler(backends.Auth, 2*time.Second),
		Admin:    handler.NewAdminHandler(dashboardService, catalogService),
		Manager:  handler.NewManagerHandler(dashboardService, orderService, fleetService, routingService, catalogService),
		Customer: handler.NewCustomerHandler(dashboardService, orderService, catalogService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Tracking: handler.NewTrackingHandler(trackingService, bus, hub),
	})

	return appRouter, hubCancel
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	// Cancelling the hub closes every live socket, which Shutdown cannot do
	// for hijacked connections.
	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
