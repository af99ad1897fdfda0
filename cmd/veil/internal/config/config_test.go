package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv(EnvDBName, "holberton")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Name != "holberton" {
		t.Errorf("Database.Name = %q, want %q", cfg.Database.Name, "holberton")
	}
	if cfg.Database.Username != "root" {
		t.Errorf("Database.Username = %q, want default root", cfg.Database.Username)
	}
	if cfg.Database.Password != "" {
		t.Errorf("Database.Password = %q, want default empty", cfg.Database.Password)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want default localhost", cfg.Database.Host)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDBUsername, "reader")
	t.Setenv(EnvDBPassword, "s3cret")
	t.Setenv(EnvDBHost, "db.internal")
	t.Setenv(EnvDBName, "userdata")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Username != "reader" {
		t.Errorf("Database.Username = %q, want reader", cfg.Database.Username)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("Database.Password = %q, want s3cret", cfg.Database.Password)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Database.Name != "userdata" {
		t.Errorf("Database.Name = %q, want userdata", cfg.Database.Name)
	}
}

func TestLoad_MissingDatabaseName(t *testing.T) {
	t.Setenv(EnvDBName, "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error when database name is unset")
	}
	if !strings.Contains(err.Error(), EnvDBName) {
		t.Errorf("error = %v, want mention of %s", err, EnvDBName)
	}
}

func TestLoad_RedactionDefaults(t *testing.T) {
	t.Setenv(EnvDBName, "userdata")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"name", "email", "phone", "ssn", "password"}
	if len(cfg.Redaction.Fields) != len(want) {
		t.Fatalf("Redaction.Fields = %v, want %v", cfg.Redaction.Fields, want)
	}
	for i, f := range want {
		if cfg.Redaction.Fields[i] != f {
			t.Errorf("Redaction.Fields[%d] = %q, want %q", i, cfg.Redaction.Fields[i], f)
		}
	}
	if cfg.Redaction.Separator != ";" {
		t.Errorf("Redaction.Separator = %q, want ;", cfg.Redaction.Separator)
	}
	if cfg.Redaction.Placeholder != "***" {
		t.Errorf("Redaction.Placeholder = %q, want ***", cfg.Redaction.Placeholder)
	}
}

func TestLoad_FileOverridesDefaultsEnvWins(t *testing.T) {
	t.Setenv(EnvDBHost, "env-host")
	t.Setenv(EnvDBName, "userdata")

	dir := t.TempDir()
	path := filepath.Join(dir, "veil.conf")
	content := `
database:
  host: file-host
  query_timeout: 10
redaction:
  placeholder: "xxx"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Host != "env-host" {
		t.Errorf("Database.Host = %q, want env value to win over file", cfg.Database.Host)
	}
	if cfg.Database.QueryTimeout != 10 {
		t.Errorf("Database.QueryTimeout = %d, want file value 10", cfg.Database.QueryTimeout)
	}
	if cfg.Redaction.Placeholder != "xxx" {
		t.Errorf("Redaction.Placeholder = %q, want file value xxx", cfg.Redaction.Placeholder)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Setenv(EnvDBName, "userdata")

	_, err := Load(filepath.Join(t.TempDir(), "absent.conf"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "multi-char separator", content: "redaction:\n  separator: \";;\"\n"},
		{name: "empty placeholder", content: "redaction:\n  placeholder: \"\"\n"},
		{name: "bad log level", content: "logging:\n  level: loud\n"},
		{name: "non-positive timeout", content: "database:\n  query_timeout: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDBName, "userdata")

			path := filepath.Join(t.TempDir(), "veil.conf")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write config file: %v", err)
			}

			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestVersion(t *testing.T) {
	if Version() == "" {
		t.Error("Version() returned empty string")
	}
}
