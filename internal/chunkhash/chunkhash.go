// Package chunkhash computes and caches the front/middle/end/full
// xxHash64 digests used by the deduplication pipeline, re-targeted
// from a SHA-256 byte-range probing pattern onto four fixed-position
// partial hashes.
package chunkhash

import (
	"io"
	"os"

	"github.com/initumX/onlyfind/internal/hashalgo"
	"github.com/initumX/onlyfind/internal/types"
)

// Adaptive chunk-size table. Sizes are expressed in bytes.
const (
	kib = 1 << 10
	mib = 1 << 20
)

// SizeForFile returns the chunk size to use for partial hashing of a file
// of the given size, per the adaptive chunk-size policy.
func SizeForFile(size int64) int64 {
	switch {
	case size <= 128*kib:
		return size
	case size <= 384*kib:
		return 128 * kib
	case size <= 10*mib:
		return 64 * kib
	case size <= 30*mib:
		return 128 * kib
	case size <= 75*mib:
		return 256 * kib
	case size <= 150*mib:
		return 512 * kib
	case size <= 400*mib:
		return mib
	default:
		return 2 * mib
	}
}

// AssignChunkSize assigns f's chunk size exactly once, before any partial
// hash of it is computed.
func AssignChunkSize(f *types.File) {
	f.SetChunkSize(SizeForFile(f.Size))
}

// readRange reads up to size bytes starting at offset from path. A
// missing/unreadable file or a read error yields an empty digest rather
// than propagating the error.
func readRange(path string, offset, size int64) types.Digest {
	if size <= 0 {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return nil
		}
	}

	h := hashalgo.New()
	buf := make([]byte, min64(size, 64*kib))
	remaining := size
	for remaining > 0 {
		n, err := f.Read(buf[:min64(remaining, int64(len(buf)))])
		if n > 0 {
			_, _ = h.Write(buf[:n])
			remaining -= int64(n)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil
		}
		if n == 0 {
			break
		}
	}
	return hashalgo.Digest64(h)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Front computes (and caches) the front-chunk digest: bytes [0, min(C,S)).
func Front(f *types.File) types.Digest {
	return f.GetOrCompute(types.SlotFront, func() types.Digest {
		c := f.ChunkSize()
		size := min64(c, f.Size)
		return readRange(f.Path, 0, size)
	})
}

// Middle computes (and caches) the middle-chunk digest: offset
// max(0, S/2), up to C bytes.
func Middle(f *types.File) types.Digest {
	return f.GetOrCompute(types.SlotMiddle, func() types.Digest {
		c := f.ChunkSize()
		offset := max64(0, f.Size/2)
		size := min64(c, f.Size-offset)
		return readRange(f.Path, offset, size)
	})
}

// End computes (and caches) the end-chunk digest: offset max(0, S-C), up
// to C bytes.
func End(f *types.File) types.Digest {
	return f.GetOrCompute(types.SlotEnd, func() types.Digest {
		c := f.ChunkSize()
		offset := max64(0, f.Size-c)
		size := f.Size - offset
		return readRange(f.Path, offset, size)
	})
}

// Full computes (and caches) the whole-file digest.
func Full(f *types.File) types.Digest {
	return f.GetOrCompute(types.SlotFull, func() types.Digest {
		return readRange(f.Path, 0, f.Size)
	})
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
