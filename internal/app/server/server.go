package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"bizadmin/internal/domain/admin"
	"bizadmin/internal/domain/auth"
	"bizadmin/internal/domain/employee"
	"bizadmin/internal/domain/messaging"
	"bizadmin/internal/domain/notifications"
	"bizadmin/internal/domain/reports"
	"bizadmin/internal/domain/settings"
	"bizadmin/internal/kv"
	"bizadmin/internal/platform/config"
	"bizadmin/internal/platform/idgen"
	"bizadmin/internal/platform/metrics"
	adminhandler "bizadmin/internal/transport/http/handlers/admin"
	authhandler "bizadmin/internal/transport/http/handlers/auth"
	employeehandler "bizadmin/internal/transport/http/handlers/employee"
	messageshandler "bizadmin/internal/transport/http/handlers/messages"
	notificationshandler "bizadmin/internal/transport/http/handlers/notifications"
	reportshandler "bizadmin/internal/transport/http/handlers/reports"
	settingshandler "bizadmin/internal/transport/http/handlers/settings"
	"bizadmin/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Store  *kv.Store
	Router http.Handler

	poller *messaging.Poller
}

// New wires the stores, services and router for the given configuration.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	store, err := kv.Open(cfg.DataPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ids := idgen.New(time.Now)

	notifier := notifications.New(ctx, store, logger, ids.Next)
	admins := admin.New(ctx, store, notifier, logger, ids.Next)
	if cfg.RunSeed {
		admins.Seed(ctx)
	}

	msgs := messaging.New(ctx, store, admins, notifier, logger, ids.Next)
	msgs.InitializeChats(ctx)

	employees := employee.New(ctx, store, admins, msgs, notifier, logger)
	prefs := settings.New(ctx, store, logger)
	reporter := reports.NewService(admins, time.Now)

	authSvc, err := auth.New(cfg.JWTSecret, cfg.TokenTTL, auth.Credentials{
		AdminEmail:       cfg.AdminEmail,
		AdminPassword:    cfg.AdminPassword,
		EmployeeEmail:    cfg.EmployeeEmail,
		EmployeePassword: cfg.EmployeePassword,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("auth: %w", err)
	}

	poller := messaging.NewPoller(msgs, cfg.PollInterval, func(msg messaging.Message) {
		logger.Info("message observed", "from", msg.Sender, "to", msg.Recipient)
	}, logger)
	poller.Start(ctx)

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger, collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(collector.Snapshot())
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(30, time.Minute))
			authhandler.NewHandler(authSvc).RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))
			adminhandler.NewHandler(admins).RegisterRoutes(r)
			messageshandler.NewHandler(msgs).RegisterRoutes(r)
			notificationshandler.NewHandler(notifier).RegisterRoutes(r)
			reportshandler.NewHandler(reporter).RegisterRoutes(r)
			settingshandler.NewHandler(prefs).RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleEmployee))
			employeehandler.NewHandler(employees).RegisterRoutes(r)
		})
	})

	return &App{
		Config: cfg,
		Store:  store,
		Router: router,
		poller: poller,
	}, nil
}

func (a *App) Close() {
	if a.poller != nil {
		a.poller.Stop()
	}
	if a.Store != nil {
		_ = a.Store.Close()
	}
}

// ListenAndServe serves until the context is cancelled, then drains in-flight
// requests before returning.
func (a *App) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// Run builds the app from the environment and serves until the listener
// fails or a termination signal arrives.
func Run() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := app.ListenAndServe(ctx, cfg.Addr); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
