package blob

import (
	"context"
	"fmt"
	"os"

	blobfs "cdscore/internal/infra/blob/fs"
	blobmem "cdscore/internal/infra/blob/memory"
	blobs3 "cdscore/internal/infra/blob/s3"
)

// NewMemory returns an in-memory attachment store.
func NewMemory() Store { return blobmem.New() }

// NewFilesystem returns a filesystem attachment store rooted at root.
func NewFilesystem(root string) (Store, error) { return blobfs.New(root) }

// NewS3 returns an S3 attachment store from explicit settings.
func NewS3(ctx context.Context, cfg blobs3.Config) (Store, error) { return blobs3.New(ctx, cfg) }

// Options selects and configures a backend explicitly, typically from the
// application config file.
type Options struct {
	Driver string
	FSRoot string
	S3     blobs3.Config
}

// OpenWith constructs a Store from Options. An empty driver defaults to fs.
func OpenWith(ctx context.Context, opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(opts.FSRoot)
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// Open selects a Store implementation using environment variables.
//
//	CDSCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	CDSCORE_BLOB_FS_ROOT: directory root when driver=fs (default ./attachments)
//	(S3 specific variables documented in the s3 package)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("CDSCORE_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("CDSCORE_BLOB_FS_ROOT"))
	case DriverS3:
		return blobs3.OpenFromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
