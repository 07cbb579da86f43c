package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validBody = `
db_username: postgres
db_password: postgres
db_host: localhost
db_port: "5432"
db_name: foodzippy
jwt_key: secret
admin_email: admin@example.com
admin_password_hash: $2a$10$abcdefghijklmnopqrstuv
`

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validBody))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.FullDayMinutes != DefaultFullDayMinutes {
		t.Errorf("FullDayMinutes = %d, want default %d", cfg.FullDayMinutes, DefaultFullDayMinutes)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
}

func TestNewConfigOverridesThreshold(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validBody+"full_day_minutes: 360\n"))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if cfg.FullDayMinutes != 360 {
		t.Errorf("FullDayMinutes = %d, want 360", cfg.FullDayMinutes)
	}
}

func TestNewConfigMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no database", "jwt_key: secret\nadmin_email: a@b.c\nadmin_password_hash: x\n"},
		{"no jwt key", "db_username: u\ndb_password: p\ndb_host: h\ndb_name: d\nadmin_email: a@b.c\nadmin_password_hash: x\n"},
		{"no admin identity", "db_username: u\ndb_password: p\ndb_host: h\ndb_name: d\njwt_key: secret\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConfig(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
