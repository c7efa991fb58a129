package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "trainup"
  user: "trainup"
  password: "secret"
  sslmode: "disable"
auth:
  jwt_secret: "test-secret-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "trainup" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "trainup")
	}
	if cfg.Auth.JWTSecret != "test-secret-123" {
		t.Errorf("auth.jwt_secret = %q, want %q", cfg.Auth.JWTSecret, "test-secret-123")
	}
	if cfg.Auth.TokenTTLHours != 24 {
		t.Errorf("auth.token_ttl_hours default = %d, want 24", cfg.Auth.TokenTTLHours)
	}
}

// TestEnvOverride verifies that TRAINUP_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("TRAINUP_SERVER_PORT", "9090")
	t.Setenv("TRAINUP_DB_PASSWORD", "env-secret")
	t.Setenv("TRAINUP_AUTH_JWT_SECRET", "env-jwt")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090 (env override)", cfg.Server.Port)
	}
	if cfg.Database.Password != "env-secret" {
		t.Errorf("database.password = %q, want %q", cfg.Database.Password, "env-secret")
	}
	if cfg.Auth.JWTSecret != "env-jwt" {
		t.Errorf("auth.jwt_secret = %q, want %q", cfg.Auth.JWTSecret, "env-jwt")
	}
}

// TestDSN verifies connection string assembly including the sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "trainup", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/trainup?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}

	d.SSLMode = "require"
	want = "postgres://u:p@db:5432/trainup?sslmode=require"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// TestValidation verifies that required fields are enforced.
func TestValidation(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"missing port", `
database: {host: localhost, port: 5432, name: t, user: u}
auth: {jwt_secret: s}
`},
		{"missing db host", `
server: {port: 8080}
database: {port: 5432, name: t, user: u}
auth: {jwt_secret: s}
`},
		{"missing jwt secret", `
server: {port: 8080}
database: {host: localhost, port: 5432, name: t, user: u}
`},
	}
	for _, tc := range cases {
		if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}

// TestTailscaleEnabledSkipsPort verifies a tsnet-only server does not need
// a listen port.
func TestTailscaleEnabledSkipsPort(t *testing.T) {
	cfg, err := Load(writeTemp(t, `
database: {host: localhost, port: 5432, name: t, user: u}
tailscale: {enabled: true}
auth: {jwt_secret: s}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tailscale.Hostname != "trainup" {
		t.Errorf("tailscale.hostname default = %q, want %q", cfg.Tailscale.Hostname, "trainup")
	}
}
