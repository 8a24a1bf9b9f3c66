package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/covadmin")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("default port: got %q, want 8000", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("default env: got %q", cfg.Env)
	}
	if cfg.DBMaxConns != 10 || cfg.DBMinConns != 2 {
		t.Errorf("default pool bounds: got max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("default CORS origins: got %v", cfg.CORSOrigins)
	}
	if cfg.AuthEnabled() {
		t.Error("auth should be disabled without AUTH_SECRET")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/covadmin")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("AUTH_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port override: got %q", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("ENV=production should not report development")
	}
	if !cfg.AuthEnabled() {
		t.Error("auth should be enabled when AUTH_SECRET is set")
	}
}
