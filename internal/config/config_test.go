package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SESSION_SECRET", "CSRF_PROTECTION", "PORT", "GIN_MODE", "CORS_ALLOWED_ORIGINS",
		"DATABASE_DRIVER", "DATABASE_URL", "BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %s", cfg.Port)
	}
	if cfg.DatabaseDriver != DriverSQLite {
		t.Fatalf("unexpected driver: %s", cfg.DatabaseDriver)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("unexpected bcrypt cost: %d", cfg.BcryptCost)
	}
	if cfg.CSRFProtection {
		t.Fatal("CSRF protection should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "pgx")
	t.Setenv("DATABASE_URL", "postgres://localhost/recipes")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("CSRF_PROTECTION", "true")
	t.Setenv("GIN_MODE", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9090" || cfg.DatabaseDriver != DriverPostgres || cfg.BcryptCost != 4 || !cfg.CSRFProtection {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		GinMode:        "debug",
		DatabaseDriver: DriverSQLite,
		DatabaseURL:    ":memory:",
		BcryptCost:     10,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.DatabaseDriver = "mysql" }, wantErr: "DATABASE_DRIVER"},
		{name: "empty url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: "DATABASE_URL"},
		{name: "cost too low", mutate: func(c *Config) { c.BcryptCost = 1 }, wantErr: "BCRYPT_COST"},
		{name: "release without secret", mutate: func(c *Config) { c.GinMode = "release" }, wantErr: "SESSION_SECRET is required"},
		{name: "release short secret", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionSecret = "short"
		}, wantErr: "at least 32 bytes"},
		{name: "release ok", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionSecret = strings.Repeat("s", 32)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	cfg := Config{CORSAllowedOrigins: "http://a.test, http://b.test,,"}
	got := cfg.AllowedOrigins()
	want := []string{"http://a.test", "http://b.test"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AllowedOrigins() = %#v, want %#v", got, want)
	}
}
