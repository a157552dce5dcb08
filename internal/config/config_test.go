// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8000"

database:
  path: "./test.db"

auth:
  jwt_secret: "test-secret-for-config-loading"
  token_ttl: "30m"

seed:
  enabled: true
  path: "./seed.toml"

logging:
  level: "debug"
  format: "json"

metrics:
  enabled: true
  path: "/metrics"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify server config
	if cfg.Server.HTTPAddr != "0.0.0.0:8000" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8000")
	}

	// Verify database config
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}

	// Verify auth config with duration parsing
	if cfg.Auth.JWTSecret != "test-secret-for-config-loading" {
		t.Errorf("Auth.JWTSecret = %q, want the configured secret", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("Auth.TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 30*time.Minute)
	}

	// Verify seed config
	if !cfg.Seed.Enabled {
		t.Error("Seed.Enabled = false, want true")
	}
	if cfg.Seed.Path != "./seed.toml" {
		t.Errorf("Seed.Path = %q, want %q", cfg.Seed.Path, "./seed.toml")
	}

	// Verify logging config
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}

	// Verify metrics config
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_COMMERCE_JWT_SECRET", "secret-from-env")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8000"

database:
  path: "./test.db"

auth:
  jwt_secret: "${TEST_COMMERCE_JWT_SECRET}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != "secret-from-env" {
		t.Errorf("Auth.JWTSecret = %q, want %q", cfg.Auth.JWTSecret, "secret-from-env")
	}
}

func TestLoad_EnvVarExpansion_UnsetVar(t *testing.T) {
	// Ensure the env var is NOT set
	os.Unsetenv("UNSET_VAR_FOR_TEST")

	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8000"

database:
  path: "./test.db"

auth:
  jwt_secret: "${UNSET_VAR_FOR_TEST}"
`)

	// Unset vars expand to empty, which fails jwt_secret validation
	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want validation failure for empty jwt_secret")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error = %v, want mention of jwt_secret", err)
	}
}

func TestLoad_DefaultTokenTTL(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8000"

database:
  path: "./test.db"

auth:
  jwt_secret: "test-secret"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("Auth.TokenTTL = %v, want default %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8000"

database:
  path: "./test.db"

auth:
  jwt_secret: "test-secret"
  token_ttl: "not-a-duration"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() error = nil, want duration parse failure")
	}
	if !strings.Contains(err.Error(), "token_ttl") {
		t.Errorf("error = %v, want mention of token_ttl", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want file read failure")
	}
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "missing http_addr",
			cfg: Config{
				Database: DatabaseConfig{Path: "./db"},
				Auth:     AuthConfig{JWTSecret: "s"},
			},
			want: "http_addr",
		},
		{
			name: "missing database path",
			cfg: Config{
				Server: ServerConfig{HTTPAddr: ":8000"},
				Auth:   AuthConfig{JWTSecret: "s"},
			},
			want: "database.path",
		},
		{
			name: "missing jwt_secret",
			cfg: Config{
				Server:   ServerConfig{HTTPAddr: ":8000"},
				Database: DatabaseConfig{Path: "./db"},
			},
			want: "jwt_secret",
		},
		{
			name: "seed enabled without path",
			cfg: Config{
				Server:   ServerConfig{HTTPAddr: ":8000"},
				Database: DatabaseConfig{Path: "./db"},
				Auth:     AuthConfig{JWTSecret: "s"},
				Seed:     SeedConfig{Enabled: true},
			},
			want: "seed.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
