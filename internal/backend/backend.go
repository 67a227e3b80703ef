// Package backend resolves configuration into concrete record and blob
// stores. Resolution happens exactly once at startup; handlers never branch
// on backend type.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"comprobantes/internal/blob"
	blobdrive "comprobantes/internal/blob/drive"
	blobgcs "comprobantes/internal/blob/gcs"
	bloblocal "comprobantes/internal/blob/local"
	"comprobantes/internal/config"
	"comprobantes/internal/store"
	"comprobantes/internal/store/gormstore"
	"comprobantes/internal/store/redisstore"
	"comprobantes/internal/store/sqlite"
)

// Result holds the resolved stores. UploadsDir is set only for the local
// blob backend, where the web layer must serve /uploads/ itself.
type Result struct {
	Records    store.RecordStore
	Blobs      blob.Store
	UploadsDir string
	Cleanup    func() error
}

// Build constructs the record store and blob store selected by the config.
// Config validation has already run, so missing settings for the selected
// backends are programmer errors, not user errors.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	records, err := buildRecordStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{Records: records, Cleanup: records.Close}

	switch cfg.BlobBackend {
	case "local":
		local, err := bloblocal.New(cfg.UploadDir)
		if err != nil {
			records.Close()
			return nil, fmt.Errorf("initialize local blob store: %w", err)
		}
		res.Blobs = local
		res.UploadsDir = local.Dir()
		logger.Info("Initialized local blob backend", "dir", local.Dir())
	case "gcs":
		res.Blobs = blobgcs.New(cfg.GCSBucket)
		logger.Info("Initialized GCS blob backend", "bucket", cfg.GCSBucket)
	case "drive":
		drv, err := blobdrive.NewFromEnv(ctx, cfg.DriveFolderID)
		if err != nil {
			records.Close()
			return nil, fmt.Errorf("initialize drive blob store: %w", err)
		}
		res.Blobs = drv
		logger.Info("Initialized Drive blob backend", "folder", cfg.DriveFolderID)
	default:
		records.Close()
		return nil, fmt.Errorf("unsupported blob backend: %s", cfg.BlobBackend)
	}

	return res, nil
}

func buildRecordStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.RecordStore, error) {
	switch cfg.RecordBackend {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite record backend", "db_path", cfg.SQLiteDBPath)
		return s, nil
	case "mysql":
		s, err := gormstore.New(cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("initialize mysql store: %w", err)
		}
		logger.Info("Initialized MySQL record backend")
		return s, nil
	case "redis":
		s, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("initialize redis store: %w", err)
		}
		logger.Info("Initialized Redis record backend", "addr", cfg.RedisAddr)
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported record backend: %s", cfg.RecordBackend)
	}
}
