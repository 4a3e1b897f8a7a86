package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetup_DisabledByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	f, err := Setup(false, t.TempDir(), "game.log")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if f != nil {
		f.Close()
		t.Error("expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Errorf("expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	dir := filepath.Join(t.TempDir(), "logs")

	f, err := Setup(true, dir, "game.log")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if f == nil {
		t.Fatal("expected non-nil log file when debug=true")
	}
	defer f.Close()

	log.Println("test log message")

	info, err := os.Stat(filepath.Join(dir, "game.log"))
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected log file to contain content")
	}
}
