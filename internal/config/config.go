package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env             string
	Port            int
	StaticDir       string
	CatalogFile     string
	OrderSink       string
	OrderLogPath    string
	PostgresDSN     string
	KafkaBrokers    []string
	KafkaTopic      string
	RemoteSinkURL   string
	SessionSecret   string
	SessionTTL      time.Duration
	JanitorInterval time.Duration
	StepInterval    time.Duration
	SubmitTimeout   time.Duration
	LogJSON         bool
}

func Default() Config {
	return Config{
		Env:             "dev",
		Port:            3000,
		StaticDir:       "./public",
		CatalogFile:     "",
		OrderSink:       "file",
		OrderLogPath:    "orders.log",
		KafkaTopic:      "milanfood.orders",
		SessionSecret:   "",
		SessionTTL:      2 * time.Hour,
		JanitorInterval: time.Minute,
		StepInterval:    3 * time.Second,
		SubmitTimeout:   10 * time.Second,
		LogJSON:         false,
	}
}

// IsProd reports whether Env names a production deployment.
func (c Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

func EnvDefaults() Config {
	return fromEnv(Default())
}

func fromEnv(c Config) Config {
	if v := os.Getenv("MILANFOOD_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("MILANFOOD_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("MILANFOOD_STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("MILANFOOD_CATALOG_FILE"); v != "" {
		c.CatalogFile = v
	}
	if v := os.Getenv("MILANFOOD_ORDER_SINK"); v != "" {
		c.OrderSink = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("MILANFOOD_ORDER_LOG"); v != "" {
		c.OrderLogPath = v
	}
	if v := os.Getenv("MILANFOOD_POSTGRES_DSN"); v != "" {
		c.PostgresDSN = v
	}
	if v := os.Getenv("MILANFOOD_KAFKA_BROKERS"); v != "" {
		c.KafkaBrokers = SplitList(v)
	}
	if v := os.Getenv("MILANFOOD_KAFKA_TOPIC"); v != "" {
		c.KafkaTopic = v
	}
	if v := os.Getenv("MILANFOOD_REMOTE_SINK_URL"); v != "" {
		c.RemoteSinkURL = v
	}
	if v := os.Getenv("MILANFOOD_SESSION_SECRET"); v != "" {
		c.SessionSecret = v
	}
	durationVar("MILANFOOD_SESSION_TTL", &c.SessionTTL)
	durationVar("MILANFOOD_JANITOR_INTERVAL", &c.JanitorInterval)
	durationVar("MILANFOOD_STEP_INTERVAL", &c.StepInterval)
	durationVar("MILANFOOD_SUBMIT_TIMEOUT", &c.SubmitTimeout)
	c.LogJSON = c.IsProd()
	if v := os.Getenv("MILANFOOD_LOG_JSON"); v != "" {
		switch v {
		case "1", "true", "TRUE":
			c.LogJSON = true
		case "0", "false", "FALSE":
			c.LogJSON = false
		}
	}
	return c
}

func durationVar(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		*dst = d
	}
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
