// File: pkg/logging/logging.go
package logging

import (
	"errors"
	"os"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Setup builds the global logger: development config with debug, production
// otherwise. Every entry carries appName and appVersion.
func Setup(debug bool, appName, appVersion string) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		zap.ReplaceGlobals(Logger)
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}

// Sync flushes the global logger. Stderr is only synced when it is a
// terminal or a regular file; pipes and character devices reject fsync.
func Sync() error {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return nil
	}
	if err := Logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) && !errors.Is(err, syscall.ENOTTY) {
		return err
	}
	return nil
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
