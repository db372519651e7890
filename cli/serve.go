package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/thebestschool/school_site/config"
	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/handlers"
	"github.com/thebestschool/school_site/inits"
	"github.com/thebestschool/school_site/logging"
	"github.com/thebestschool/school_site/middleware"
	"github.com/thebestschool/school_site/operations"
	"github.com/thebestschool/school_site/relay"
	"github.com/thebestschool/school_site/routines"
	"github.com/thebestschool/school_site/validators"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SITE_ADDR)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.GinMode, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger)
}

func serve(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	router, store, err := buildRouter(cfg, logger)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		routines.StartCleanupRoutine(ctx, store, cfg.CleanupInterval, logger)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildRouter(cfg config.Config, logger *zap.Logger) (*gin.Engine, *operations.Store, error) {
	db, err := inits.DBInit()
	if err != nil {
		return nil, nil, fmt.Errorf("init session db: %w", err)
	}
	store := operations.NewStore(db, relay.NewClient(nil), cfg.SessionTTL, logger)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AccessLogMiddleware(logger))
	router.Use(middleware.DomainWhitelistMiddleware(cfg.AllowedHosts))
	router.Use(middleware.SessionMiddleware(cfg.CookieSecure))

	h := &handlers.Handler{
		Forms: forms.NewRegistry(
			forms.Contact(cfg.ContactEndpoint),
			forms.Enrollment(cfg.EnrollmentEndpoint),
		),
		Store:   store,
		Captcha: validators.NewTurnstileVerifier(cfg.TurnstileSecret, cfg.TestToken, cfg.Release(), logger),
		SiteKey: cfg.TurnstileSiteKey,
		Logger:  logger,
	}
	h.Register(router,
		middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, logger),
		middleware.RateLimitMiddleware(cfg.EditRateLimitPerMinute, logger),
	)
	return router, store, nil
}
