package logging

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"
)

// Backend names accepted by New.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a JSON logger writing to stdout with the chosen backend.
func New(backend string) (Logger, error) {
	switch backend {
	case BackendSlog, "":
		return NewJSONSlogLogger(os.Stdout, slog.LevelInfo), nil
	case BackendZap:
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return NewZapLogger(zl), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
