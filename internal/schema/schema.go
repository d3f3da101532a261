// Package schema embeds the canonical artifact submission schema and
// validates decoded JSON documents against it.
package schema

import (
	_ "embed"
	"sync"
)

// Canonical schema content embedded so validation never depends on the
// filesystem at runtime.
//
//go:embed cds_schema.json
var schemaJSON []byte

var (
	loadOnce   sync.Once
	loadedDoc  *Node
	loadedErr  error
	loadedName string
)

// Load parses the embedded schema once and returns its root node. The parse
// preserves property declaration order so violations come out in a stable,
// schema-defined order.
func Load() (*Node, error) {
	loadOnce.Do(func() {
		loadedDoc, loadedName, loadedErr = parseSchema(schemaJSON)
	})
	return loadedDoc, loadedErr
}

// MustLoad is Load for callers that treat a malformed embedded schema as a
// programming error.
func MustLoad() *Node {
	n, err := Load()
	if err != nil {
		panic(err)
	}
	return n
}

// Title returns the embedded schema's declared title.
func Title() string {
	MustLoad()
	return loadedName
}

// Raw returns the embedded schema bytes, for serving the schema verbatim.
func Raw() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}
