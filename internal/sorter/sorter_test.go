package sorter

import (
	"testing"

	"github.com/initumX/onlyfind/internal/types"
)

func file(path, name string, depth int, fav bool) *types.File {
	return types.NewFile(path, name, "", 100, depth, fav)
}

func TestSortShortestPathFavouriteAlwaysFirst(t *testing.T) {
	keep := file("/fav/deep/nested/keep.jpg", "keep.jpg", 3, true)
	del := file("/normal/del.jpg", "del.jpg", 1, false)

	groups := []types.DuplicateGroup{{Size: 100, Files: []*types.File{del, keep}}}
	sorted := SortGroupsInPlace(groups, types.SortShortestPath)

	g := sorted.First()
	if g.Files[0] != keep {
		t.Fatalf("expected favourite file first despite deeper path, got %+v", g.Files)
	}
}

func TestSortShortestPathSecondaryKey(t *testing.T) {
	shallow := file("/a/b.jpg", "b.jpg", 1, false)
	deep := file("/a/c/d/e.jpg", "e.jpg", 3, false)

	groups := []types.DuplicateGroup{{Size: 100, Files: []*types.File{deep, shallow}}}
	sorted := SortGroupsInPlace(groups, types.SortShortestPath)

	g := sorted.First()
	if g.Files[0] != shallow {
		t.Errorf("expected shallower path first under SHORTEST_PATH, got %+v", g.Files)
	}
}

func TestSortShortestFilenameSecondaryKey(t *testing.T) {
	shortName := file("/a/b/c/x.jpg", "x.jpg", 3, false)
	longName := file("/y.jpg", "averyverylongfilename.jpg", 0, false)

	groups := []types.DuplicateGroup{{Size: 100, Files: []*types.File{longName, shortName}}}
	sorted := SortGroupsInPlace(groups, types.SortShortestFilename)

	g := sorted.First()
	if g.Files[0] != shortName {
		t.Errorf("expected shorter filename first under SHORTEST_FILENAME, got %+v", g.Files)
	}
}

func TestSortTiesBreakLexicographically(t *testing.T) {
	b := file("/a/bbb.jpg", "bbb.jpg", 1, false)
	a := file("/a/aaa.jpg", "aaa.jpg", 1, false)

	groups := []types.DuplicateGroup{{Size: 100, Files: []*types.File{b, a}}}
	sorted := SortGroupsInPlace(groups, types.SortShortestPath)

	g := sorted.First()
	if g.Files[0] != a {
		t.Errorf("expected lexicographically smaller path first on a full tie, got %+v", g.Files)
	}
}

func TestGroupsDescendingBySize(t *testing.T) {
	small := types.DuplicateGroup{Size: 10, Files: []*types.File{file("/a", "a", 0, false), file("/b", "b", 0, false)}}
	large := types.DuplicateGroup{Size: 1000, Files: []*types.File{file("/c", "c", 0, false), file("/d", "d", 0, false)}}

	sorted := SortGroupsInPlace([]types.DuplicateGroup{small, large}, types.SortShortestPath)
	items := sorted.Items()
	if items[0].Size != 1000 || items[1].Size != 10 {
		t.Errorf("expected descending size order, got sizes %d, %d", items[0].Size, items[1].Size)
	}
}
