package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKeyOpts are the render settings that distinguish otherwise
// identical inputs. Two runs share a cache entry only when every option
// matches.
type ArtifactKeyOpts struct {
	Format   string   `json:"format"`
	Mode     string   `json:"mode,omitempty"`
	Anchor   string   `json:"anchor"`
	Fields   []string `json:"fields"`
	Border   bool     `json:"border,omitempty"`
	Geometry string   `json:"geometry"`
}

// ArtifactKey builds the cache key for a rendered artifact from the input
// hash and the render options.
func ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(opts)
	return fmt.Sprintf("artifact:%s:%s", inputHash, Hash(data))
}
