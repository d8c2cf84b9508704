package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/config"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/session"
	"github.com/cmlabs-hris/hris-portal-go/internal/guard"
	appHTTP "github.com/cmlabs-hris/hris-portal-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-portal-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/notify"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/hris-portal-go/internal/repository/redis"
	serviceAuth "github.com/cmlabs-hris/hris-portal-go/internal/service/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, closeTokens, err := newTokenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize token store", "store", cfg.Session.Store, "error", err)
		os.Exit(1)
	}
	defer closeTokens()

	portalMetrics := metrics.New()
	hub := sse.NewHub()

	// The session end hook needs the auth service, which needs the client.
	var authService *serviceAuth.AuthServiceImpl
	apiClient, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithRetries(cfg.API.Retries),
		apiclient.WithSessionTokens(tokens, cfg.Session.AccessTokenTTL),
		apiclient.WithObserver(portalMetrics),
		apiclient.WithSessionEndHook(func(sessionID string) {
			authService.EndSession(sessionID)
		}),
	)
	if err != nil {
		slog.Error("Invalid API_BASE_URL", "error", err)
		os.Exit(1)
	}
	interviewClient, err := apiclient.New(cfg.Interview.BaseURL,
		apiclient.WithName("interview"),
		apiclient.WithTimeout(cfg.Interview.Timeout),
		apiclient.WithRetries(cfg.Interview.Retries),
		apiclient.WithObserver(portalMetrics),
	)
	if err != nil {
		slog.Error("Invalid INTERVIEW_API_BASE_URL", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewHubNotifier(hub, portalMetrics)
	registry := store.NewRegistry(apiClient, interviewClient, notifier)

	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.RefreshTokenTTL, cfg.Session.CookieSecure)
	authService = serviceAuth.NewAuthService(apiClient, tokens, JWTService, registry, hub,
		cfg.Session.AccessTokenTTL, cfg.Session.RefreshTokenTTL)

	var guardOpts []guard.Option
	if cfg.App.AuditGateEnabled {
		guardOpts = append(guardOpts, guard.WithAuditGate(auditCheck(registry)))
	}
	navigator := middleware.NewNavigator(guard.New(guardOpts...), registry, tokens, portalMetrics)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Navigation: appHTTP.NewNavigationHandler(navigator, registry, hub),
		Employee:   appHTTP.NewEmployeeHandler(registry),
		Dashboard:  appHTTP.NewDashboardHandler(registry),
		Leave:      appHTTP.NewLeaveHandler(registry),
		Attendance: appHTTP.NewAttendanceHandler(registry),
		Holiday:    appHTTP.NewHolidayHandler(registry),
		Payroll:    appHTTP.NewPayrollHandler(registry),
		Inventory:  appHTTP.NewInventoryHandler(registry),
		Audit:      appHTTP.NewAuditHandler(registry),
		Document:   appHTTP.NewDocumentHandler(registry),
		Interview:  appHTTP.NewInterviewHandler(registry),
		Settings:   appHTTP.NewSettingsHandler(registry),
	}
	router := appHTTP.NewRouter(cfg, JWTService, navigator, portalMetrics.Handler(), handlers)

	scheduler := cron.NewScheduler()
	cron.NewSessionJobs(tokens, registry, authService.EndSession, cfg.Session.PurgeInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams only end when the client leaves.
	srv.RegisterOnShutdown(hub.CloseAll)

	go func() {
		slog.Info("Portal running", "addr", srv.Addr, "env", cfg.App.Env, "token_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// newTokenStore opens the configured session token store.
func newTokenStore(ctx context.Context, cfg *config.Config) (session.TokenStore, func(), error) {
	switch cfg.Session.Store {
	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		if err := postgresql.EnsureSessionSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgresql.NewSessionRepository(db), db.Close, nil
	case config.StoreRedis:
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return redis.NewSessionRepository(rdb, cfg.Redis.Prefix), func() { _ = rdb.Close() }, nil
	default:
		return memory.NewSessionRepository(), func() {}, nil
	}
}

// auditCheck reports whether the session's user has audited every assigned device.
func auditCheck(registry *store.Registry) guard.AuditCheck {
	return func(ctx context.Context) (bool, error) {
		set, err := registry.FromContext(ctx)
		if err != nil {
			return true, nil
		}
		if _, err := set.Audit.FetchStatus(ctx); err != nil {
			return false, err
		}
		return set.Audit.AllAudited(), nil
	}
}
