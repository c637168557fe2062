package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256 digests raw schema bytes for the catalog index. Digests are
// lowercase hex so they compare equal to `sha256sum` output.
type SHA256 struct{}

func (SHA256) Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
