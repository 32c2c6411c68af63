package logger

import (
	"os"
	"testing"
)

func TestNewReturnsUsableLogger(t *testing.T) {
	os.Unsetenv("LOG_FORMAT")
	os.Unsetenv("LOG_LEVEL")

	log, err := New()
	if err != nil {
		t.Fatalf("expected logger, got error: %v", err)
	}
	if log == nil {
		t.Fatal("expected non-nil logger")
	}
	log.Info("startup check")
	_ = log.Sync()
}

func TestNewRejectsBadLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "chatty")
	defer os.Unsetenv("LOG_LEVEL")

	if _, err := New(); err == nil {
		t.Error("expected error for unknown LOG_LEVEL")
	}
}

func TestNewConsoleFormat(t *testing.T) {
	os.Setenv("LOG_FORMAT", "console")
	defer os.Unsetenv("LOG_FORMAT")

	log, err := New()
	if err != nil {
		t.Fatalf("expected logger, got error: %v", err)
	}
	log.Debug("development encoder active")
}
