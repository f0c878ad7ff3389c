// Package cache provides result caching for the render pipeline.
//
// Three backends implement the same interface: a file cache for CLI usage,
// a Redis cache for the HTTP server, and a null cache that disables
// caching entirely. Keys are derived from content hashes of the diagram
// source plus the options that influence the stage's output, so a cache
// never serves stale artifacts for changed input.
package cache

import (
	"context"
	"time"
)

// TTLs for cached pipeline stage outputs.
const (
	TTLDocument = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte payloads under string keys with a TTL.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get returns the payload and whether the key was present.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores the payload. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// DocumentKey identifies a parsed+laid-out document by source hash.
	DocumentKey(sourceHash string) string

	// ArtifactKey identifies a rendered artifact by source hash plus the
	// options that influence rendering.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change artifact bytes.
type ArtifactKeyOpts struct {
	VizType    string  `json:"viz_type"`
	Format     string  `json:"format"`
	Edges      bool    `json:"edges"`
	EdgeLabels bool    `json:"edge_labels"`
	Scale      float64 `json:"scale,omitempty"`
	Background string  `json:"background,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256 under a stage prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// DocumentKey generates a key for the parsed document stage.
func (k *DefaultKeyer) DocumentKey(sourceHash string) string {
	return hashKey("doc", sourceHash)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so independent deployments can
// share one Redis instance without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DocumentKey generates a prefixed document key.
func (k *ScopedKeyer) DocumentKey(sourceHash string) string {
	return k.prefix + k.inner.DocumentKey(sourceHash)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}
