package masterstore

import (
	"context"
	"fmt"
	"log/slog"

	"quizsorter/internal/config"
	"quizsorter/internal/logging"
)

// Open constructs the store selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	logger = logging.NewComponentLogger(logger, "masterstore")

	switch cfg.Storage.Backend {
	case config.BackendFS, "":
		store, err := NewFS(cfg.Paths.MasterDir, cfg.Storage.KeepBackup)
		if err != nil {
			return nil, err
		}
		logger.Debug("master store opened",
			logging.String("driver", string(DriverFilesystem)),
			logging.String(logging.FieldPath, store.Root()),
		)
		return store, nil
	case config.BackendS3:
		s3cfg := cfg.Storage.S3
		store, err := NewS3(ctx, S3Config{
			Bucket:    s3cfg.Bucket,
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			Prefix:    s3cfg.Prefix,
			PathStyle: s3cfg.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		logger.Debug("master store opened",
			logging.String("driver", string(DriverS3)),
			logging.String("bucket", s3cfg.Bucket),
			logging.String("prefix", s3cfg.Prefix),
		)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
