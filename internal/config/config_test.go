package config

import "testing"

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FAULTWATCH_POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing dsn")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FAULTWATCH_POSTGRES_DSN", "postgres://localhost/faultwatch")
	t.Setenv("FAULTWATCH_HTTP_PORT", "9090")
	t.Setenv("FAULTWATCH_KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("FAULTWATCH_SUMMARY_TTL_SECONDS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTPAddress() != ":9090" {
		t.Errorf("http address = %q, want :9090", cfg.HTTPAddress())
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if !cfg.KafkaEnabled() {
		t.Error("kafka should be enabled")
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled without addr")
	}
	if cfg.SummaryTTL().Seconds() != 120 {
		t.Errorf("summary ttl = %v", cfg.SummaryTTL())
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("FAULTWATCH_POSTGRES_DSN", "postgres://localhost/faultwatch")
	t.Setenv("FAULTWATCH_HTTP_PORT", "")
	t.Setenv("FAULTWATCH_KAFKA_BROKERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddress() != ":8080" {
		t.Errorf("http address = %q, want :8080", cfg.HTTPAddress())
	}
	if cfg.Kafka.AlertsTopic != "faultwatch.alerts" {
		t.Errorf("alerts topic = %q", cfg.Kafka.AlertsTopic)
	}
	if cfg.KafkaEnabled() {
		t.Error("kafka should be disabled")
	}
}
