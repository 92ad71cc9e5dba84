package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/veil-ledger/libveil-go/reqstore"
)

// logWriter duplicates log output to stdout and the rotating log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = slog.NewBackend(logWriter{})
	logRotator *rotator.Rotator

	mainLog  = backendLog.Logger("MAIN")
	storeLog = backendLog.Logger("STOR")
)

func init() {
	reqstore.UseLogger(storeLog)
}

// initLogRotator starts the rotating log file under dir.
func initLogRotator(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	r, err := rotator.New(filepath.Join(dir, "notereq.log"), 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("create log rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevel applies the configured level to all subsystem loggers.
func setLogLevel(level string) {
	lvl, _ := slog.LevelFromString(level)
	mainLog.SetLevel(lvl)
	storeLog.SetLevel(lvl)
}
