package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"solar_advisor/internal/advisory"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Model.Path != "models/solar_model.json" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Advisory != advisory.DefaultThresholds() {
		t.Fatalf("advisory defaults: %+v", cfg.Advisory)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("token ttl: %v", cfg.Auth.TokenTTL)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second || cfg.HTTP.IdleTimeout != time.Minute {
		t.Fatalf("http defaults: %+v", cfg.HTTP)
	}
}

func TestLoad_ShippedConfigHasNoSigningKey(t *testing.T) {
	t.Setenv("SOLAR_AUTH_SIGNING_KEY", "")

	cfg, err := Load(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.SigningKey != "" {
		t.Fatalf("configs/config.yml ships a literal signing key %q", cfg.Auth.SigningKey)
	}
}

func TestLoad_SigningKeyFromEnv(t *testing.T) {
	t.Setenv("SOLAR_AUTH_SIGNING_KEY", "from-env")

	cfg, err := Load(filepath.Join("..", "..", "configs"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.SigningKey != "from-env" {
		t.Fatalf("signing key: want from-env, got %q", cfg.Auth.SigningKey)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
port: "9090"
advisory:
  critical_dust_days: 10
  optimal_lower: 85
  optimal_upper: 95
simulator:
  tick: 250ms
`)
	t.Setenv("SOLAR_ADVISORY_CRITICAL_DUST_DAYS", "7")
	t.Setenv("SOLAR_LOG_LEVEL", "debug")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port: want 9090, got %s", cfg.Port)
	}
	if cfg.Advisory.CriticalDustDays != 7 {
		t.Errorf("env override: want 7, got %d", cfg.Advisory.CriticalDustDays)
	}
	if cfg.Advisory.OptimalUpper != 95 {
		t.Errorf("optimal upper: want 95, got %v", cfg.Advisory.OptimalUpper)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: want debug, got %s", cfg.Log.Level)
	}
	if cfg.Simulator.Tick != 250*time.Millisecond {
		t.Errorf("tick: want 250ms, got %v", cfg.Simulator.Tick)
	}
}

func TestLoad_InvalidThresholds(t *testing.T) {
	dir := writeConfig(t, `
advisory:
  optimal_lower: 95
  optimal_upper: 85
`)
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_MQTTSeverity(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.MinSeverity = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
	cfg.MQTT.MinSeverity = "warning"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
