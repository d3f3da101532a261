package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"cdscore/internal/blob"
	"cdscore/internal/config"
	blobs3 "cdscore/internal/infra/blob/s3"
	"cdscore/internal/infra/persistence/memory"
	"cdscore/internal/infra/persistence/postgres"
	"cdscore/internal/infra/persistence/sqlite"
	"cdscore/internal/logging"
	"cdscore/internal/mapper"
	"cdscore/pkg/artifact"
)

// env bundles the collaborators a command needs, built from the effective
// configuration.
type env struct {
	cfg    config.Config
	store  artifact.Store
	mapper *mapper.Mapper
	close  func() error
}

// openEnv loads configuration, initializes logging and wires the store,
// attachment resolver and mapper.
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load(rootFlags.config)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format)

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	bs, err := blob.OpenWith(ctx, blob.Options{
		Driver: cfg.Blob.Driver,
		FSRoot: cfg.Blob.FSRoot,
		S3: blobs3.Config{
			Bucket:          cfg.Blob.S3.Bucket,
			Region:          cfg.Blob.S3.Region,
			Endpoint:        cfg.Blob.S3.Endpoint,
			AccessKeyID:     cfg.Blob.S3.AccessKeyID,
			SecretAccessKey: cfg.Blob.S3.SecretAccessKey,
			SessionToken:    cfg.Blob.S3.SessionToken,
			PathStyle:       cfg.Blob.S3.PathStyle,
		},
	})
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	resolver := blob.NewResolver(bs, cfg.Blob.BaseURL)
	m := mapper.New(store, logging.New("mapper"), resolver)
	return &env{cfg: cfg, store: store, mapper: m, close: closeStore}, nil
}

func openStore(cfg config.StoreConfig) (artifact.Store, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return memory.NewStore(), func() error { return nil }, nil
	case "sqlite":
		s, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "postgres":
		s, err := postgres.NewStore(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// readDocumentFile decodes a JSON document from path, or stdin when path is
// "-".
func readDocumentFile(path string, decode func(io.Reader) (map[string]any, error)) (map[string]any, error) {
	if path == "-" {
		return decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}
