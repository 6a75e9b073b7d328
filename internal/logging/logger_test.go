package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/animatrix/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = ""
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs", "animatrix.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestLogger_ErrorGoesToErrWriter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	if _, err := NewLogger(&cfg); err != nil { // resets colors
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	l := New(&out, &errOut)
	l.Info("frames ready")
	l.Error("ffmpeg failed")

	if !strings.Contains(out.String(), "[INFO] frames ready") {
		t.Errorf("stdout = %q", out.String())
	}
	if strings.Contains(out.String(), "ffmpeg failed") {
		t.Errorf("error line leaked to stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[ERROR] ffmpeg failed") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestLogger_DebugRespectsVerbose(t *testing.T) {
	var out bytes.Buffer
	l := New(&out, &out)
	l.Debug(false, "hidden")
	if out.Len() != 0 {
		t.Errorf("Debug(false) wrote %q", out.String())
	}
	l.Debug(true, "shown")
	if !strings.Contains(out.String(), "shown") {
		t.Errorf("Debug(true) output = %q", out.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("nothing")
	l.Error("nothing")
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
