package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/angeloszaimis/bootconfig/internal/settings"
)

// FileLoader reads the configuration document from a file deployed next to
// the binary. Deployments overwrite the file per environment; a missing file
// resolves to the fallback patch.
type FileLoader struct {
	path     string
	fallback settings.Patch
	logger   *slog.Logger
}

func NewFileLoader(path string, fallback settings.Patch, logger *slog.Logger) *FileLoader {
	return &FileLoader{
		path:     path,
		fallback: fallback,
		logger:   logger,
	}
}

func (l *FileLoader) Name() string {
	return "file"
}

func (l *FileLoader) Load(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Info("Configuration document not found, using fallback values",
				slog.String("path", l.path))
			return Result{Patch: l.fallback, Outcome: OutcomeFallback}, nil
		}
		return Result{}, fmt.Errorf("read configuration document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, fmt.Errorf("decode configuration document: %w", err)
	}

	l.logger.Info("Loaded configuration document",
		slog.String("path", l.path))

	return Result{Patch: doc.patch(), Outcome: OutcomeDocument}, nil
}
