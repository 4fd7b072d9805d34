// ABOUTME: Logger factory selecting the logrus or zap backend from configuration
// ABOUTME: Routes output to stderr or to a lumberjack rotating file

package logger

import (
	"fmt"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sgacode/rss-finder/core/interfaces"
	logruslogger "github.com/sgacode/rss-finder/infrastructure/logger/logrus"
	zaplogger "github.com/sgacode/rss-finder/infrastructure/logger/zap"
	"github.com/sgacode/rss-finder/pkg/config"
)

const (
	// BackendLogrus writes human-readable text
	BackendLogrus = "logrus"

	// BackendZap writes JSON
	BackendZap = "zap"
)

// New builds the logger named by cfg.Backend, or by fallback when the
// configuration leaves it empty. Logs go to cfg.File when set, otherwise to
// w. The returned close function flushes and releases the output.
func New(cfg config.LogConfig, fallback string, w io.Writer) (interfaces.Logger, func() error, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = fallback
	}

	level := cfg.Level
	if level == "" {
		level = "info"
	}

	out := w
	closeOut := func() error { return nil }
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		out = file
		closeOut = file.Close
	}

	switch backend {
	case BackendLogrus:
		l, err := logruslogger.New(out, level)
		if err != nil {
			closeOut()
			return nil, nil, err
		}
		return l, closeOut, nil

	case BackendZap:
		l, err := zaplogger.New(out, level)
		if err != nil {
			closeOut()
			return nil, nil, err
		}
		return l, func() error {
			_ = l.Sync()
			return closeOut()
		}, nil

	default:
		closeOut()
		return nil, nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
