package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/kshop/internal/checkout"
	"github.com/fjod/kshop/internal/config"
	h "github.com/fjod/kshop/internal/http"
	"github.com/fjod/kshop/internal/session"
	"github.com/fjod/kshop/pkg/logger"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "catalog browsing, cart and checkout over HTTP",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP API",
				Action: serve,
			},
			{
				Name:  "catalog",
				Usage: "manage the offline catalog",
				Subcommands: []*cli.Command{
					{
						Name:  "migrate",
						Usage: "create and seed the SQLite catalog",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "db",
								Usage: "database path, overrides STOREFRONT_CATALOG_DB_PATH",
							},
						},
						Action: migrateCatalog,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	l, err := logger.New(cfg.LogMode)
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}
	defer func() { _ = l.Sync() }()

	lookup, closeLookup, err := buildLookup(c.Context, cfg, l)
	if err != nil {
		return err
	}
	defer closeLookup()

	publisher, closePublisher := buildPublisher(cfg, l)
	defer closePublisher()

	sess := session.New(lookup)
	checkoutService := checkout.NewService(publisher, l)

	router := h.NewRouter(h.Handlers{
		Products: h.NewProductHandler(lookup, sess, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(lookup, sess, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(sess, checkoutService),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		l.Info("storefront starting",
			zap.String("port", cfg.HTTPPort),
			zap.String("catalog_source", cfg.CatalogSource))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		return errors.Wrap(err, "server error")
	}

	l.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server forced to shutdown")
	}
	checkoutService.Wait()

	l.Info("server exited")
	return nil
}

func migrateCatalog(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	path := cfg.CatalogDBPath
	if p := c.String("db"); p != "" {
		path = p
	}

	if err := migrateSQLite(path); err != nil {
		return err
	}
	log.Printf("catalog migrated at %s", path)
	return nil
}
