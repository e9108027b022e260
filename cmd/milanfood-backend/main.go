package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"milanfood-backend/internal/catalog"
	"milanfood-backend/internal/checkout"
	"milanfood-backend/internal/config"
	"milanfood-backend/internal/env"
	"milanfood-backend/internal/infrastructure/asset"
	"milanfood-backend/internal/server"
	"milanfood-backend/internal/session"
	"milanfood-backend/internal/usecase"
)

func main() {
	env.Load(".env", ".env.local")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd(config.EnvDefaults(), run).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(d config.Config, runFn func(context.Context, config.Config) error) *cobra.Command {
	cfg := d
	var brokers string
	cmd := &cobra.Command{
		Use:           "milanfood-backend",
		Short:         "Milán food storefront: catalog, cart, checkout and order intake",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("env") && !cmd.Flags().Changed("log-json") {
				cfg.LogJSON = cfg.IsProd()
			}
			if cmd.Flags().Changed("kafka-brokers") {
				cfg.KafkaBrokers = config.SplitList(brokers)
			}
			return runFn(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.Env, "env", d.Env, "environment name (dev, test, prod)")
	f.IntVar(&cfg.Port, "port", d.Port, "HTTP listen port")
	f.StringVar(&cfg.StaticDir, "static", d.StaticDir, "storefront static files directory")
	f.StringVar(&cfg.CatalogFile, "catalog", d.CatalogFile, "JSON catalog file; built-in menu when empty")
	f.StringVar(&cfg.OrderSink, "order-sink", d.OrderSink, "order sink: file, postgres, kafka, http, memory")
	f.StringVar(&cfg.OrderLogPath, "order-log", d.OrderLogPath, "orders log path for the file sink")
	f.StringVar(&cfg.PostgresDSN, "postgres-dsn", d.PostgresDSN, "postgres DSN for the postgres sink")
	f.StringVar(&brokers, "kafka-brokers", strings.Join(d.KafkaBrokers, ","), "comma separated kafka seed brokers")
	f.StringVar(&cfg.KafkaTopic, "kafka-topic", d.KafkaTopic, "kafka topic for the kafka sink")
	f.StringVar(&cfg.RemoteSinkURL, "remote-sink-url", d.RemoteSinkURL, "base URL for the http sink")
	f.StringVar(&cfg.SessionSecret, "session-secret", d.SessionSecret, "HMAC secret for session tokens")
	f.DurationVar(&cfg.SessionTTL, "session-ttl", d.SessionTTL, "idle time before a session is dropped")
	f.DurationVar(&cfg.JanitorInterval, "janitor-interval", d.JanitorInterval, "how often idle sessions are swept")
	f.DurationVar(&cfg.StepInterval, "step-interval", d.StepInterval, "order progress step duration")
	f.DurationVar(&cfg.SubmitTimeout, "submit-timeout", d.SubmitTimeout, "order sink timeout")
	f.BoolVar(&cfg.LogJSON, "log-json", d.LogJSON, "JSON logs (default on in prod)")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cat, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}
	if cfg.SessionSecret == "" {
		if cfg.IsProd() {
			return errors.New("session secret required in production")
		}
		cfg.SessionSecret = "dev-" + strconv.FormatInt(time.Now().UnixNano(), 36)
		logger.Warn("no session secret configured, using an ephemeral one")
	}

	sink, closeSink, err := buildSink(cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	reader, _ := sink.(usecase.OrderReader)
	orders := &usecase.OrderService{Sink: sink, Logger: logger.Named("orders")}
	sessions := &usecase.SessionService{
		Repo:          session.NewStore(),
		Catalog:       cat,
		Orders:        orders,
		Reader:        reader,
		Tokens:        &usecase.TokenService{Secret: cfg.SessionSecret, TTL: cfg.SessionTTL},
		Validator:     checkout.NewCustomerValidator(),
		StepInterval:  cfg.StepInterval,
		SubmitTimeout: cfg.SubmitTimeout,
		TTL:           cfg.SessionTTL,
		Logger:        logger.Named("sessions"),
	}
	go sessions.RunJanitor(ctx, cfg.JanitorInterval)

	srv := server.New(cfg, server.Deps{
		Catalog:  cat,
		Sessions: sessions,
		Orders:   orders,
		Assets:   asset.NewFSReader(cfg.StaticDir),
		Logger:   logger.Named("http"),
	})
	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.Int("port", cfg.Port), zap.String("sink", cfg.OrderSink), zap.String("env", cfg.Env))
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogJSON {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.New(catalog.Menu())
	}
	return catalog.Load(path)
}
