// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of the
// optimizer.
//
// The versions are folded into cache keys, so bumping one invalidates every
// cached rewrite produced under the old logic.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the logical parts of the
// application. Increment one before deploying a change to that component.
var ComponentVersions = struct {
	// Lexicon changes whenever an entry is added to or removed from the word lists.
	Lexicon string `json:"lexicon"`

	// Scoring changes whenever a rule weight or threshold changes.
	Scoring string `json:"scoring"`

	// RewritePrompt changes whenever the system instruction sent to the
	// rewrite model, or the parser reading its answer, changes.
	RewritePrompt string `json:"rewritePrompt"`
}{
	Lexicon:       "v1.0",
	Scoring:       "v1.0",
	RewritePrompt: "v1.0",
}

// Fingerprint is the compact form of ComponentVersions used in cache keys.
func Fingerprint() string {
	return fmt.Sprintf("lv%s_sv%s_rv%s",
		ComponentVersions.Lexicon,
		ComponentVersions.Scoring,
		ComponentVersions.RewritePrompt,
	)
}

// GenerateVersionedCacheKey creates a consistent, version-aware cache key from
// a prefix, a hash of the prompt and the current component versions.
//
// Example output: "rewritecache:a1b2c3d4...:lvv1.0_svv1.0_rvv1.0"
func GenerateVersionedCacheKey(prefix, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return fmt.Sprintf("%s:%s:%s", prefix, hex.EncodeToString(sum[:]), Fingerprint())
}
