package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annmon.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=test")
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("TZ", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PollInterval.Std() != 10*time.Minute {
		t.Fatalf("expected 10m default interval, got %s", cfg.PollInterval)
	}
	if cfg.Timezone != "Asia/Shanghai" {
		t.Fatalf("expected Asia/Shanghai default, got %s", cfg.Timezone)
	}
	if !cfg.Sources.WeixinPayEnabled() || !cfg.Sources.TencentCloudEnabled() || !cfg.Sources.YeepayEnabled() {
		t.Fatalf("expected all sources enabled by default")
	}
}

func TestLoadRequiresWebhook(t *testing.T) {
	t.Setenv("WEBHOOK_URL", "")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for missing WEBHOOK_URL")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
webhook_url: https://example.invalid/from-file
poll_interval: 5m
timezone: UTC
sources:
  yeepay: false
`)
	t.Setenv("WEBHOOK_URL", "https://example.invalid/from-env")
	t.Setenv("POLL_INTERVAL", "")
	t.Setenv("TZ", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WebhookURL != "https://example.invalid/from-env" {
		t.Fatalf("env should override file, got %s", cfg.WebhookURL)
	}
	if cfg.PollInterval.Std() != 5*time.Minute {
		t.Fatalf("expected 5m from file, got %s", cfg.PollInterval)
	}
	if cfg.Sources.YeepayEnabled() {
		t.Fatalf("expected yeepay disabled by file")
	}
	if cfg.Sources.WeixinPayEnabled() != true {
		t.Fatalf("expected weixin pay still enabled")
	}
}

func TestValidateRejectsShortInterval(t *testing.T) {
	cfg := Default()
	cfg.WebhookURL = "https://example.invalid/hook"
	cfg.PollInterval = Duration(10 * time.Second)

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for sub-minute interval")
	}
}

func TestDebugTime(t *testing.T) {
	cfg := Default()
	cfg.WebhookURL = "https://example.invalid/hook"
	cfg.DebugSince = "2025-01-15"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := cfg.DebugTime()
	if got.IsZero() {
		t.Fatalf("expected non-zero debug time")
	}
	if got.Format("2006-01-02") != "2025-01-15" {
		t.Fatalf("unexpected debug time: %s", got)
	}

	cfg.DebugSince = "not-a-date"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for bad debug_since")
	}
}
