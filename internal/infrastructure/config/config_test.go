package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with no file", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Mode != "stdio" {
			t.Errorf("Mode = %q, want stdio", cfg.Mode)
		}
		if cfg.API.Host != "127.0.0.1" {
			t.Errorf("API.Host = %q, want 127.0.0.1", cfg.API.Host)
		}
		if cfg.API.Port != 8395 {
			t.Errorf("API.Port = %d, want 8395", cfg.API.Port)
		}
		if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" || cfg.Logging.Output != "stderr" {
			t.Errorf("Logging = %+v, want info/json/stderr", cfg.Logging)
		}
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
mode: http
database:
  path: /data/example.db
api:
  host: 0.0.0.0
  port: 9000
logging:
  level: debug
  format: text
`)

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Mode != "http" {
			t.Errorf("Mode = %q, want http", cfg.Mode)
		}
		if cfg.Database.Path != "/data/example.db" {
			t.Errorf("Database.Path = %q, want /data/example.db", cfg.Database.Path)
		}
		if cfg.API.Host != "0.0.0.0" || cfg.API.Port != 9000 {
			t.Errorf("API = %+v, want 0.0.0.0:9000", cfg.API)
		}
		if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
			t.Errorf("Logging = %+v, want debug/text", cfg.Logging)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, `
database:
  path: /from/file.db
`)

		t.Setenv("DBSCOPE_DATABASE_PATH", "/from/env.db")
		t.Setenv("DBSCOPE_LOG_LEVEL", "warn")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Database.Path != "/from/env.db" {
			t.Errorf("Database.Path = %q, want /from/env.db", cfg.Database.Path)
		}
		if cfg.Logging.Level != "warn" {
			t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
		}
	})

	t.Run("key and token are environment-only", func(t *testing.T) {
		// A hostile or careless config file cannot inject secrets.
		path := writeConfig(t, `
database:
  key: file-key
api:
  token: file-token
`)

		t.Setenv("DBSCOPE_DATABASE_KEY", "env-key")
		t.Setenv("DBSCOPE_API_TOKEN", "env-token")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Database.Key != "env-key" {
			t.Errorf("Database.Key = %q, want env-key (YAML must be ignored)", cfg.Database.Key)
		}
		if cfg.API.Token != "env-token" {
			t.Errorf("API.Token = %q, want env-token (YAML must be ignored)", cfg.API.Token)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil {
			t.Fatal("Load() error = nil, want read failure")
		}
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := writeConfig(t, "mode: [unclosed")
		if _, err := Load(path); err == nil {
			t.Fatal("Load() error = nil, want parse failure")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("invalid mode", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Mode = "carrier-pigeon"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() error = nil, want mode error")
		}
	})

	t.Run("http mode requires valid port", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Mode = "http"
		cfg.API.Port = 0
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() error = nil, want port error")
		}
	})

	t.Run("stdio mode ignores port", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.API.Port = 0
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v, want nil", err)
		}
	})
}

func TestTimeoutAccessors(t *testing.T) {
	cfg := defaultConfig()

	if cfg.GetReadTimeout() != 30*time.Second {
		t.Errorf("GetReadTimeout() = %v, want 30s", cfg.GetReadTimeout())
	}
	if cfg.GetWriteTimeout() != 30*time.Second {
		t.Errorf("GetWriteTimeout() = %v, want 30s", cfg.GetWriteTimeout())
	}
	if cfg.GetIdleTimeout() != 60*time.Second {
		t.Errorf("GetIdleTimeout() = %v, want 60s", cfg.GetIdleTimeout())
	}
}

// writeConfig writes YAML content to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}
