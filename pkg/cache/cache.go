// Package cache provides pluggable result caching for the floorslice pipeline.
//
// Plans, measured layouts, and rendered artifacts are cached separately so
// staged invocations (parse, layout, render) reuse earlier work. Three
// backends are provided:
//   - FileCache: JSON entries under a directory, for CLI usage
//   - RedisCache: shared cache for multi-machine batch runs
//   - NullCache: caching disabled
//
// Keys are derived from content hashes by a Keyer, so identical inputs hit
// the same entries regardless of file paths.
package cache

import (
	"context"
	"time"
)

// TTLs for the different entry kinds. Plans and layouts are pure functions
// of their input, so the TTLs only bound cache growth.
const (
	TTLPlan     = 30 * 24 * time.Hour
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores byte values under string keys with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that distinguish cached artifacts
// produced from the same layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Scale  int    `json:"scale,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// PlanKey keys a built (unmeasured) plan by the hash of its token input.
	PlanKey(inputHash string) string

	// LayoutKey keys a measured and placed plan by the built plan's hash.
	LayoutKey(planHash string) string

	// ArtifactKey keys a rendered artifact by the layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for built plan caching.
func (k *DefaultKeyer) PlanKey(inputHash string) string {
	return hashKey("plan", inputHash)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(planHash string) string {
	return hashKey("layout", planHash)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple projects can share a
// backend (typically Redis) without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlanKey generates a prefixed key for built plan caching.
func (k *ScopedKeyer) PlanKey(inputHash string) string {
	return k.prefix + k.inner.PlanKey(inputHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(planHash string) string {
	return k.prefix + k.inner.LayoutKey(planHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
