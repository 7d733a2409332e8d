package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexdrive.log")

	log, err := NewLogger(LogLevelDebug, path)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	log.Info("session opened")
	log.Warn("goForward(0) ignored")
	log.Error("connect failed")
	log.Debug("frame bytes")
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)

	for _, want := range []string{"INFO: session opened", "WARN: goForward(0) ignored", "ERROR: connect failed", "DEBUG: frame bytes"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q", want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexdrive.log")

	log, err := NewLogger(LogLevelError, path)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	log.Info("not recorded")
	log.Debug("not recorded either")
	log.Error("recorded")
	log.Close()

	data, _ := os.ReadFile(path)
	content := string(data)
	if strings.Contains(content, "not recorded") {
		t.Errorf("low-level messages leaked: %q", content)
	}
	if !strings.Contains(content, "ERROR: recorded") {
		t.Errorf("error message missing: %q", content)
	}
}

func TestSetLevel(t *testing.T) {
	log := Nop()
	defer log.Close()

	if log.GetLevel() != LogLevelSilent {
		t.Errorf("Nop() level = %v, want silent", log.GetLevel())
	}
	log.SetLevel(LogLevelDebug)
	if log.GetLevel() != LogLevelDebug {
		t.Errorf("GetLevel() = %v after SetLevel", log.GetLevel())
	}
}

func TestLogDispatchDoesNotPanic(t *testing.T) {
	log := Nop()
	defer log.Close()
	log.LogDispatch("goForward", 6500*time.Millisecond, 325, 2)
	log.LogStartup("192.168.4.1", 5555, 100*time.Millisecond)
	log.LogHex("frame", []byte{0x50, 0x4B, 0x54})
}
