package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. In headless mode logs go to stdout (JSON in
// production form); when the TUI owns the terminal they go to a file under
// dataDir so the screen stays clean.
func New(dataDir string, headless bool) (*zap.Logger, error) {
	var encoder zapcore.Encoder
	level := zap.InfoLevel

	if os.Getenv("DEV_LOGGING") == "true" {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zap.DebugLevel
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	if headless {
		core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
		return zap.New(core), nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	logPath := filepath.Join(dataDir, "annmon.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(f), level)
	return zap.New(core), nil
}
