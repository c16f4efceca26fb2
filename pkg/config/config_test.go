package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RECALL_API_KEY", "rk")
	t.Setenv("TRIGGER_SECRET_KEY", "tr_dev_123")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Sweep.BatchLimit != 5 {
		t.Fatalf("expected default batch limit 5, got %d", cfg.Sweep.BatchLimit)
	}
	if cfg.Sweep.LockTTL != 5*time.Minute {
		t.Fatalf("expected lock ttl 5m, got %s", cfg.Sweep.LockTTL)
	}
	if cfg.Dispatch.Backend != "trigger" {
		t.Fatalf("expected trigger backend, got %s", cfg.Dispatch.Backend)
	}
	if cfg.RedisEnabled() {
		t.Fatalf("redis should be disabled without REDIS_HOST")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Recall:   RecallConfig{APIKey: "rk"},
			JWT:      JWTConfig{AccessSecret: "s"},
			Dispatch: DispatchConfig{Backend: "trigger"},
			Trigger:  TriggerConfig{APIKey: "tk"},
			NATS:     NATSConfig{URL: "nats://localhost:4222"},
			Sweep:    SweepConfig{BatchLimit: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing recall key", mutate: func(c *Config) { c.Recall.APIKey = "" }, wantErr: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.AccessSecret = "" }, wantErr: true},
		{name: "auth disabled without secret", mutate: func(c *Config) {
			c.JWT.AccessSecret = ""
			c.Server.AuthDisabled = true
		}},
		{name: "trigger without key", mutate: func(c *Config) { c.Trigger.APIKey = "" }, wantErr: true},
		{name: "nats backend", mutate: func(c *Config) {
			c.Dispatch.Backend = "nats"
			c.Trigger.APIKey = ""
		}},
		{name: "unknown backend", mutate: func(c *Config) { c.Dispatch.Backend = "sqs" }, wantErr: true},
		{name: "zero batch limit", mutate: func(c *Config) { c.Sweep.BatchLimit = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
