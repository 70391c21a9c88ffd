package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey digests the full prefixed key string. The same function is
// used at issuance and at lookup, so equality is always on hashes.
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
