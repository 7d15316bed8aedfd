// Package grouper partitions files into candidate-duplicate groups by a
// caller-supplied key function. It generalizes a size-then-inode
// grouping/singleton-filtering pattern from a fixed two-stage grouping
// onto an arbitrary key.
package grouper

import (
	"sort"

	"github.com/initumX/onlyfind/internal/normalizer"
	"github.com/initumX/onlyfind/internal/types"
)

// KeyFunc computes a grouping key for f. ok is false if the key cannot
// be computed for this file (e.g. a hash read failed); such files are
// counted as skipped and excluded from every group, never aborting the
// pass.
type KeyFunc[K comparable] func(f *types.File) (K, bool)

// GroupBy partitions files by keyFn, keeping only groups with two or
// more members. Within each surviving group, favourite files sort
// first; the ordering among non-favourite (and among favourite) files
// is otherwise stable, matching their relative order in the input
// slice.
func GroupBy[K comparable](files []*types.File, keyFn KeyFunc[K]) (map[K][]*types.File, int) {
	buckets := make(map[K][]*types.File)
	skipped := 0

	for _, f := range files {
		key, ok := keyFn(f)
		if !ok {
			skipped++
			continue
		}
		buckets[key] = append(buckets[key], f)
	}

	result := make(map[K][]*types.File, len(buckets))
	for key, group := range buckets {
		if len(group) < 2 {
			continue
		}
		sortFavouriteFirst(group)
		result[key] = group
	}

	return result, skipped
}

// sortFavouriteFirst stably reorders group so favourite files precede
// non-favourite ones, preserving relative order within each partition.
func sortFavouriteFirst(group []*types.File) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].IsFromFavourite && !group[j].IsFromFavourite
	})
}

// BySize groups files sharing the same byte size. Always succeeds.
func BySize(f *types.File) (int64, bool) { return f.Size, true }

// sizeExtKey and friends are the composite keys for the boost-mode
// grouping strategies.
type sizeExtKey struct {
	size int64
	ext  string
}

// BySizeAndExt groups files sharing size and (case-folded) extension.
func BySizeAndExt(f *types.File) (sizeExtKey, bool) {
	return sizeExtKey{size: f.Size, ext: f.Ext}, true
}

type sizeNameKey struct {
	size int64
	name string
}

// BySizeAndName groups files sharing size and exact (case-sensitive)
// filename.
func BySizeAndName(f *types.File) (sizeNameKey, bool) {
	return sizeNameKey{size: f.Size, name: f.Name}, true
}

// BySizeAndNormalizedName groups files sharing size and fuzzy-normalized
// filename.
func BySizeAndNormalizedName(f *types.File) (sizeNameKey, bool) {
	return sizeNameKey{size: f.Size, name: normalizer.Normalize(f.Name)}, true
}

// ByFrontHash groups files sharing a front-chunk digest. Files with a
// failed (empty) digest report ok=false so they never merge into a
// shared bucket by coincidence of emptiness.
func ByFrontHash(f *types.File) (string, bool) {
	return hashKey(f.FrontHash())
}

// ByMiddleHash groups files sharing a middle-chunk digest.
func ByMiddleHash(f *types.File) (string, bool) {
	return hashKey(f.MiddleHash())
}

// ByEndHash groups files sharing an end-chunk digest.
func ByEndHash(f *types.File) (string, bool) {
	return hashKey(f.EndHash())
}

// ByFullHash groups files sharing a full-file digest.
func ByFullHash(f *types.File) (string, bool) {
	return hashKey(f.FullHash())
}

func hashKey(d types.Digest) (string, bool) {
	if len(d) == 0 {
		return "", false
	}
	return d.String(), true
}
