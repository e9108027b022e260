package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Port != 3000 || c.OrderSink != "file" || c.OrderLogPath != "orders.log" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.StepInterval != 3*time.Second || c.SessionTTL != 2*time.Hour {
		t.Fatalf("unexpected durations: %+v", c)
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MILANFOOD_ORDER_SINK", " Kafka ")
	t.Setenv("MILANFOOD_KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("MILANFOOD_STEP_INTERVAL", "500ms")
	t.Setenv("MILANFOOD_SESSION_TTL", "bogus")
	t.Setenv("MILANFOOD_LOG_JSON", "false")

	c := EnvDefaults()
	if c.Port != 8080 {
		t.Fatalf("port %d", c.Port)
	}
	if c.OrderSink != "kafka" {
		t.Fatalf("sink %q", c.OrderSink)
	}
	if len(c.KafkaBrokers) != 2 || c.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("brokers %v", c.KafkaBrokers)
	}
	if c.StepInterval != 500*time.Millisecond {
		t.Fatalf("step %v", c.StepInterval)
	}
	if c.SessionTTL != 2*time.Hour {
		t.Fatalf("invalid duration should keep default, got %v", c.SessionTTL)
	}
	if c.LogJSON {
		t.Fatalf("log json should be off")
	}
}

func TestEnvDefaults_PrefixedPortWins(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MILANFOOD_PORT", "9090")
	if p := EnvDefaults().Port; p != 9090 {
		t.Fatalf("port %d", p)
	}
}

func TestEnvDefaults_LogFormatFollowsEnv(t *testing.T) {
	t.Setenv("MILANFOOD_ENV", "dev")
	if EnvDefaults().LogJSON {
		t.Fatalf("dev should log to the console")
	}
	t.Setenv("MILANFOOD_ENV", "prod")
	if !EnvDefaults().LogJSON {
		t.Fatalf("prod should log JSON")
	}
	t.Setenv("MILANFOOD_LOG_JSON", "0")
	if EnvDefaults().LogJSON {
		t.Fatalf("explicit MILANFOOD_LOG_JSON should win")
	}
}
