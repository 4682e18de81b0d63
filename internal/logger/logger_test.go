package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"development", "production", ""} {
		t.Run(mode, func(t *testing.T) {
			l, err := New(Config{Mode: mode, Level: "debug"})
			if err != nil {
				t.Fatalf("New(%q): %v", mode, err)
			}
			l.With("service", "test").Debug("hello", "k", 1)
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careerpath.log")
	l, err := New(Config{Mode: "production", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("written to file", "user", "u1")
	l.Sync()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected log file to contain data")
	}
}
