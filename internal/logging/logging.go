package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a production JSON logger at the given level ("debug", "info", "warn", ...).
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.InitialFields = map[string]any{"service": "product-service-go"}
	return cfg.Build()
}
