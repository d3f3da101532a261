package blob

import (
	"context"
	"errors"
	"strings"

	"cdscore/pkg/artifact"
)

// Resolver turns stored attachment keys into client-facing URLs. Backends
// that can presign do so; otherwise the resolver falls back to the Info URL
// or a configured base URL.
type Resolver struct {
	store   Store
	baseURL string
}

var _ artifact.FileResolver = (*Resolver)(nil)

// NewResolver wraps a Store. baseURL is optional and only used when the
// backend cannot presign and reports no URL of its own.
func NewResolver(store Store, baseURL string) *Resolver {
	return &Resolver{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

// URL reports the download URL for key, or false when the attachment does
// not exist.
func (r *Resolver) URL(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	ctx := context.Background()
	info, err := r.store.Head(ctx, key)
	if err != nil {
		return "", false
	}
	u, err := r.store.PresignURL(ctx, key, SignedURLOptions{Method: "GET"})
	if err == nil && u != "" {
		return u, true
	}
	if !errors.Is(err, ErrUnsupported) && err != nil {
		return "", false
	}
	if info.URL != "" {
		return info.URL, true
	}
	if r.baseURL != "" {
		return r.baseURL + "/" + key, true
	}
	return "", false
}
