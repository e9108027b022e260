package main

import (
	"fmt"
	"net/http"

	"milanfood-backend/internal/config"
	"milanfood-backend/internal/infrastructure/kafka"
	"milanfood-backend/internal/infrastructure/remote"
	"milanfood-backend/internal/infrastructure/repo"
	"milanfood-backend/internal/usecase"
)

// buildSink returns the configured order sink and a func releasing it.
func buildSink(cfg config.Config) (usecase.OrderSink, func(), error) {
	noop := func() {}
	switch cfg.OrderSink {
	case "", "file":
		return repo.NewFileLog(cfg.OrderLogPath), noop, nil
	case "memory":
		return repo.NewMemoryOrderRepo(), noop, nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, noop, fmt.Errorf("postgres sink requires a DSN")
		}
		r, err := repo.NewPostgresRepo(cfg.PostgresDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres sink: %w", err)
		}
		return r, func() { _ = r.Close() }, nil
	case "kafka":
		p, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, noop, fmt.Errorf("kafka sink: %w", err)
		}
		return p, p.Close, nil
	case "http":
		if cfg.RemoteSinkURL == "" {
			return nil, noop, fmt.Errorf("http sink requires a remote URL")
		}
		return &remote.Client{BaseURL: cfg.RemoteSinkURL, HTTP: &http.Client{Timeout: cfg.SubmitTimeout}}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown order sink %q", cfg.OrderSink)
	}
}
