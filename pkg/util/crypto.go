package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the lowercase hex sha256 digest of s. The management
// service expects login passwords in this form; the clear text never goes
// over the wire.
func SHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
