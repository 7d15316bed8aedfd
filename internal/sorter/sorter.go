// Package sorter orders files within confirmed duplicate groups and
// orders the groups themselves, reusing the generic Sorted[T,K]
// ordering machinery from internal/types.
package sorter

import (
	"sort"

	"github.com/initumX/onlyfind/internal/types"
)

// SortGroupsInPlace orders the files inside each group by the
// favourite-first composite key for order, and returns the groups
// themselves in descending-size order. Favourite files are an absolute
// priority: they are never interleaved with non-favourite files.
func SortGroupsInPlace(groups []types.DuplicateGroup, order types.SortOrder) types.DuplicateGroups {
	for i := range groups {
		sortOneGroup(groups[i].Files, order)
	}
	return types.NewDuplicateGroups(groups)
}

func sortOneGroup(files []*types.File, order types.SortOrder) {
	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]

		if a.IsFromFavourite != b.IsFromFavourite {
			return a.IsFromFavourite
		}

		switch order {
		case types.SortShortestFilename:
			if len(a.Name) != len(b.Name) {
				return len(a.Name) < len(b.Name)
			}
			if a.Depth != b.Depth {
				return a.Depth < b.Depth
			}
		default: // SortShortestPath
			if a.Depth != b.Depth {
				return a.Depth < b.Depth
			}
			if len(a.Name) != len(b.Name) {
				return len(a.Name) < len(b.Name)
			}
		}

		return a.Path < b.Path
	})
}
