package internal

import (
	"context"
	"errors"
	"fmt"
	"leadsdesk/internal/controllers"
	"leadsdesk/internal/persistence/interfaces"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"leadsdesk/internal/structures"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

const shutdownTimeout = 5 * time.Second

// NewHandler assembles the HTTP surface: API routes behind the rate limiter
// and metrics middleware, plus the health and metrics endpoints.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	api := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		api.Handle(route.Url, route.Handler)
	}

	root := http.NewServeMux()
	root.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		root.Handle("/metrics", promhttp.Handler())
	}
	root.Handle("/", providers.MetricsMiddleware(metrics, providers.RateLimitMiddleware(conf, logger, api)))
	return root
}

// newServer builds the listener config. Request contexts derive from the
// returned cancel func, which Shutdown triggers so watch streams close.
func newServer(conf *structures.Config, handler http.Handler) *http.Server {
	requests, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:         net.JoinHostPort(conf.WebServer.Host, strconv.Itoa(conf.WebServer.Port)),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return requests },
	}
	srv.RegisterOnShutdown(cancel)
	return srv
}

// NewApp restores the slot store, starts the background jobs and serves
// until SIGINT/SIGTERM, then flushes state to disk.
func NewApp(handler http.Handler, monitor services.HoursMonitorInterface, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	app := &App{WebServer: newServer(conf, handler)}

	signals, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	scheduler.Init()
	monitorCtx, stopMonitor := context.WithCancel(signals)
	defer stopMonitor()
	monitor.Start(monitorCtx)

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-signals.Done():
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serveErr:
		stopMonitor()
		scheduler.Close()
		return nil, fmt.Errorf("server error: %w", err)
	}

	if err := app.shutdown(scheduler, logger, stopMonitor); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	logger.Close()
	return app, nil
}

func (a *App) shutdown(scheduler interfaces.SchedulerInterface, logger providers.Logger, stopMonitor context.CancelFunc) error {
	stopMonitor()
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.WebServer.Shutdown(ctx); err != nil {
		logger.Warnf(providers.TypeApp, "Shutdown: %s", err)
	}

	defer scheduler.Close()
	return scheduler.Persist()
}
