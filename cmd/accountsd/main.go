// Command accountsd serves the accounts API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "accountsd: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := accounts.OpenDB(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := accounts.NewRepositoryManager(db)
	repo.MustValidate()

	if err := repo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if version, err := repo.SchemaVersion(ctx); err == nil {
		logger.Info("database schema at version %d", version)
	}

	validator, closeValidator, err := newValidator(cfg, logger)
	if err != nil {
		return err
	}
	defer closeValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder, err := accounts.NewPrometheusRecorder(registry)
	if err != nil {
		return err
	}

	service := accounts.NewUserService(repo.Users()).
		WithLogger(logger).
		WithRecorder(recorder).
		WithMaxLimit(cfg.Pagination.MaxLimit).
		WithDebug(cfg.Debug)

	app := fiber.New(fiber.Config{
		AppName:               "accountsd",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/healthz", healthHandler(repo, logger))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	accounts.RegisterUserRoutes(app, accounts.ProtectedRoute(cfg, validator, logger),
		accounts.WithUserService(service),
		accounts.WithControllerLogger(logger),
		accounts.WithControllerDebug(cfg.Debug),
		accounts.WithControllerMaxLimit(cfg.Pagination.MaxLimit),
	)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", cfg.Address)
		errc <- app.Listen(cfg.Address)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// healthHandler reports ok with the schema version once the database answers
func healthHandler(repo accounts.RepositoryManager, logger accounts.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		version, err := repo.SchemaVersion(c.UserContext())
		if err != nil {
			logger.Error("health check failed: %s", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok", "schema_version": version})
	}
}

// newValidator combines the HMAC secret and the JWK Set, whichever are
// configured.
func newValidator(cfg *config.Config, logger accounts.Logger) (accounts.TokenValidator, func(), error) {
	var validators []accounts.TokenValidator
	closer := func() {}

	if cfg.GetSigningKey() != "" {
		validators = append(validators, accounts.NewHMACTokenValidatorFromConfig(cfg, logger))
	}

	if url := cfg.GetJWKSURL(); url != "" {
		jwks, err := accounts.NewJWKSTokenValidator(url,
			accounts.WithJWKSIssuer(cfg.GetIssuer()),
			accounts.WithJWKSAudience(cfg.GetAudience()...),
			accounts.WithJWKSLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		validators = append(validators, jwks)
		closer = jwks.Close
	}

	return accounts.NewMultiTokenValidator(validators...), closer, nil
}
