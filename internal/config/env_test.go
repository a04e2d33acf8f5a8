package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("DARTKIDS_TEST_SET", "value")

	if got := GetEnv("DARTKIDS_TEST_SET", "fallback"); got != "value" {
		t.Errorf("GetEnv set = %q, want %q", got, "value")
	}
	if got := GetEnv("DARTKIDS_TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv unset = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int64
	}{
		{"plain", "42", 42},
		{"spaces", " 7 ", 7},
		{"negative", "-3", -3},
		{"garbage", "abc", 99},
		{"empty", "", 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DARTKIDS_TEST_INT", tt.value)
			if got := GetEnvInt("DARTKIDS_TEST_INT", 99); got != tt.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("DARTKIDS_TEST_BOOL", "true")
	if !GetEnvBool("DARTKIDS_TEST_BOOL", false) {
		t.Error("expected true")
	}
	t.Setenv("DARTKIDS_TEST_BOOL", "nope")
	if GetEnvBool("DARTKIDS_TEST_BOOL", false) {
		t.Error("unparseable value should fall back to false")
	}
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.env")
	if err := LoadDotEnv(missing); err != nil {
		t.Fatalf("LoadDotEnv(missing) = %v, want nil", err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "DARTKIDS_TEST_DOTENV_NEW=fromfile\nDARTKIDS_TEST_DOTENV_OLD=fromfile\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DARTKIDS_TEST_DOTENV_OLD", "fromenv")
	t.Setenv("DARTKIDS_TEST_DOTENV_NEW", "")
	os.Unsetenv("DARTKIDS_TEST_DOTENV_NEW")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("DARTKIDS_TEST_DOTENV_NEW"); got != "fromfile" {
		t.Errorf("new key = %q, want fromfile", got)
	}
	if got := os.Getenv("DARTKIDS_TEST_DOTENV_OLD"); got != "fromenv" {
		t.Errorf("existing key = %q, want fromenv", got)
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.value)
		if got := LogLevel(); got != tt.want {
			t.Errorf("LogLevel(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")
	logger.Info("hidden")
	logger.Warn("shown", "key", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=1") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewLoggerReportsCaller(t *testing.T) {
	t.Setenv("LOG_CALLER", "true")
	var buf bytes.Buffer
	NewLogger(&buf, "test").Info("located")
	if !strings.Contains(buf.String(), "env_test.go") {
		t.Errorf("caller missing: %q", buf.String())
	}

	t.Setenv("LOG_CALLER", "false")
	buf.Reset()
	NewLogger(&buf, "test").Info("plain")
	if strings.Contains(buf.String(), "env_test.go") {
		t.Errorf("caller reported when disabled: %q", buf.String())
	}
}
