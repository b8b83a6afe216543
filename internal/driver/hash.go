package driver

import (
	"crypto/sha256"
)

// Digest is a sha256 content hash.
type Digest [32]byte

// cacheKey hashes the source content together with the pass list, so a
// pipeline change invalidates cached output for the same source.
func cacheKey(content []byte, passNames []string) Digest {
	h := sha256.New()
	_, _ = h.Write(content)
	for _, name := range passNames {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(name))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
