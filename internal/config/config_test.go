package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envKeys = []string{
	"CONFIG_PATH", "OPENWEATHER_API_KEY", "GOOGLE_API_KEY", "HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_SOS_STREAM",
	"DATABASE_DSN", "DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `server:
  addr: ":9090"
  request_timeout: 45s
weather:
  country: "PK"
  timeout: 3s
  default_city: "Karachi"
  cities:
    - Karachi
    - Hyderabad
ai:
  model: "gemini-2.5-pro"
redis:
  addr: "localhost:6379"
  db: 2
  stream: "alerts"
log:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.RequestTimeout != 45*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 45s", cfg.Server.RequestTimeout)
	}
	if cfg.Weather.Timeout != 3*time.Second {
		t.Errorf("Weather.Timeout = %v, want 3s", cfg.Weather.Timeout)
	}
	if cfg.Weather.DefaultCity != "Karachi" {
		t.Errorf("Weather.DefaultCity = %q, want Karachi", cfg.Weather.DefaultCity)
	}
	if len(cfg.Weather.Cities) != 2 {
		t.Errorf("Expected 2 cities, got %d", len(cfg.Weather.Cities))
	}
	if cfg.Weather.BaseURL != "https://api.openweathermap.org" {
		t.Errorf("Weather.BaseURL should keep its default, got %q", cfg.Weather.BaseURL)
	}
	if cfg.AI.Model != "gemini-2.5-pro" {
		t.Errorf("AI.Model = %q, want gemini-2.5-pro", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("AI.Timeout = %v, want default 30s", cfg.AI.Timeout)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 2 || cfg.Redis.Stream != "alerts" {
		t.Errorf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Weather.Country != "PK" || cfg.Weather.DefaultCity != "Lahore" {
		t.Errorf("unexpected weather defaults %+v", cfg.Weather)
	}
	if cfg.Weather.APIKey != "" || cfg.AI.APIKey != "" {
		t.Error("API keys should be empty without environment")
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled without an address")
	}
	if cfg.Database.Enabled() {
		t.Error("Database should be disabled without a DSN")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("LOG_LEVEL", "warn")

	path := writeConfig(t, "server:\n  addr: \":9090\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Weather.APIKey != "ow-key" {
		t.Errorf("Weather.APIKey = %q, want ow-key", cfg.Weather.APIKey)
	}
	if cfg.AI.APIKey != "g-key" {
		t.Errorf("AI.APIKey = %q, want g-key", cfg.AI.APIKey)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoad_SecretsIgnoredInFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "weather:\n  api_key: from-file\nredis:\n  password: from-file\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Weather.APIKey != "" || cfg.Redis.Password != "" {
		t.Error("secrets must only come from the environment")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "invalid: [yaml: content"))
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", writeConfig(t, "weather:\n  default_city: Multan\n"))

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.Weather.DefaultCity != "Multan" {
		t.Errorf("Weather.DefaultCity = %q, want Multan", cfg.Weather.DefaultCity)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(*Config) {}, wantErr: false},
		{name: "empty country", mutate: func(c *Config) { c.Weather.Country = "" }, wantErr: true},
		{name: "empty default city", mutate: func(c *Config) { c.Weather.DefaultCity = "" }, wantErr: true},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		if err := InitLogger(LogConfig{Level: "info", Format: format}); err != nil {
			t.Errorf("InitLogger(%s) error = %v", format, err)
		}
	}

	if err := InitLogger(LogConfig{Level: "nope", Format: "json"}); err == nil {
		t.Error("Expected error for invalid level, got nil")
	}
}
