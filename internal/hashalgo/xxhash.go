// Package hashalgo provides the xxHash64 content-hash algorithm used by
// the deduplication pipeline.
package hashalgo

import (
	"github.com/cespare/xxhash/v2"

	"github.com/initumX/onlyfind/internal/types"
)

// Sum computes the xxHash64 digest of data.
func Sum(data []byte) types.Digest {
	h := xxhash.Sum64(data)
	d := make(types.Digest, 8)
	for i := 0; i < 8; i++ {
		d[i] = byte(h >> (56 - 8*i))
	}
	return d
}

// New returns a fresh xxHash64 hasher for streaming use (e.g. hashing a
// file in chunks without buffering it all in memory).
func New() *xxhash.Digest {
	return xxhash.New()
}

// Digest64 converts a streaming hasher's running sum to a types.Digest.
func Digest64(h *xxhash.Digest) types.Digest {
	sum := h.Sum64()
	d := make(types.Digest, 8)
	for i := 0; i < 8; i++ {
		d[i] = byte(sum >> (56 - 8*i))
	}
	return d
}
