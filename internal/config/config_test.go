package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Fatalf("port = %q; want %q", cfg.Port, DefaultPort)
	}
	if cfg.ModelPath != DefaultModelPath {
		t.Fatalf("model path = %q", cfg.ModelPath)
	}
	if cfg.DBPath != DefaultDBPath || cfg.LogLevel != DefaultLogLevel || cfg.GinMode != DefaultGinMode {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	yml := "port: \"9000\"\nmodel_path: from_file.json\nlog_level: debug\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "12345")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "12345" {
		t.Fatalf("env should win, got port %q", cfg.Port)
	}
	if cfg.ModelPath != "from_file.json" {
		t.Fatalf("model path from file, got %q", cfg.ModelPath)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level from file, got %q", cfg.LogLevel)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("LOG_LEVEL", "LOUD")

	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, field := range []string{"Port", "LogLevel"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error %q should mention %s", err, field)
		}
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("port: [\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected read error")
	}
}
