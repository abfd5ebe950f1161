package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest returns the SHA256 of content formatted as "sha256:<hex_hash>".
// It is used to identify downloaded design files in debug output.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(sum[:])
}
