package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey derives a cache key from a stage prefix ("plan", "layout",
// "artifact") and the values that distinguish entries within that stage:
// content hashes and, for artifacts, the render options. The parts are
// JSON-encoded before hashing so option structs participate without custom
// serialization. Key format: prefix:hash(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars); keys are never truncated.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the 64-character hex SHA-256 of data. This is the content
// hash used for raw token inputs and marshalled plans throughout the
// pipeline, so identical inputs share cache entries regardless of path.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
