// Package blob selects and wraps the attachment storage backend. The
// contracts live in the core subpackage so the backend implementations can
// depend on them without importing this package.
package blob

import "cdscore/internal/blob/core"

// Re-exported contract types so callers only import this package.
type (
	Driver           = core.Driver
	PutOptions       = core.PutOptions
	SignedURLOptions = core.SignedURLOptions
	Info             = core.Info
	Store            = core.Store
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

// ErrUnsupported indicates the backend cannot perform the operation.
var ErrUnsupported = core.ErrUnsupported
