package chunkhash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/initumX/onlyfind/internal/types"
)

func TestSizeForFileTable(t *testing.T) {
	cases := []struct {
		size int64
		want int64
	}{
		{100, 100},
		{128 * kib, 128 * kib},
		{200 * kib, 128 * kib},
		{384 * kib, 128 * kib},
		{1 * mib, 64 * kib},
		{10 * mib, 64 * kib},
		{20 * mib, 128 * kib},
		{30 * mib, 128 * kib},
		{50 * mib, 256 * kib},
		{75 * mib, 256 * kib},
		{100 * mib, 512 * kib},
		{150 * mib, 512 * kib},
		{200 * mib, mib},
		{400 * mib, mib},
		{500 * mib, 2 * mib},
	}
	for _, c := range cases {
		if got := SizeForFile(c.size); got != c.want {
			t.Errorf("SizeForFile(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func writeFile(t *testing.T, dir, name string, content []byte) *types.File {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	f := types.NewFile(path, name, filepath.Ext(name), int64(len(content)), 1, false)
	AssignChunkSize(f)
	return f
}

func TestFrontMiddleEndFullIdentical(t *testing.T) {
	dir := t.TempDir()
	content := make([]byte, 1000)
	for i := range content {
		content[i] = byte(i % 251)
	}
	a := writeFile(t, dir, "a.bin", content)
	b := writeFile(t, dir, "b.bin", content)

	if !Front(a).Equal(Front(b)) {
		t.Errorf("expected identical files to have equal front hashes")
	}
	if !Middle(a).Equal(Middle(b)) {
		t.Errorf("expected identical files to have equal middle hashes")
	}
	if !End(a).Equal(End(b)) {
		t.Errorf("expected identical files to have equal end hashes")
	}
	if !Full(a).Equal(Full(b)) {
		t.Errorf("expected identical files to have equal full hashes")
	}
}

func TestFullDiffersOnInteriorChangeOutsidePartialProbes(t *testing.T) {
	dir := t.TempDir()
	const size = 2_000_000 // C = 64KiB; front=[0,64K), middle=[1_000_000,1_065_536), end=[1_934_464,2_000_000)
	c1 := make([]byte, size)
	for i := range c1 {
		c1[i] = byte(i)
	}
	c2 := append([]byte(nil), c1...)
	c2[500_000] ^= 0xFF // well outside all three partial-probe ranges

	a := writeFile(t, dir, "a.bin", c1)
	b := writeFile(t, dir, "b.bin", c2)

	if !Front(a).Equal(Front(b)) {
		t.Fatalf("expected front hashes to match (interior change outside probe range)")
	}
	if !Middle(a).Equal(Middle(b)) {
		t.Fatalf("expected middle hashes to match (interior change outside probe range)")
	}
	if !End(a).Equal(End(b)) {
		t.Fatalf("expected end hashes to match (interior change outside probe range)")
	}
	if Full(a).Equal(Full(b)) {
		t.Errorf("expected full hashes to differ given the interior byte flip")
	}
}

func TestMissingFileYieldsEmptyDigest(t *testing.T) {
	f := types.NewFile("/nonexistent/path/does-not-exist.bin", "does-not-exist.bin", ".bin", 100, 3, false)
	AssignChunkSize(f)
	d := Front(f)
	if len(d) != 0 {
		t.Errorf("expected empty digest for unreadable file, got %x", d)
	}
}

func TestCachingPreventsRereadOnSizeMutationAttempt(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "a.bin", []byte("hello world"))
	first := Front(f)

	// Overwrite the file on disk; cached value must not change since the
	// cache is authoritative once set.
	if err := os.WriteFile(f.Path, []byte("completely different content"), 0o644); err != nil {
		t.Fatal(err)
	}
	second := Front(f)
	if !first.Equal(second) {
		t.Errorf("cached front hash changed after on-disk mutation; cache must be authoritative")
	}
}

func TestChunkSizeAssignedOnce(t *testing.T) {
	f := types.NewFile("/a/b", "b", "", 1000, 1, false)
	AssignChunkSize(f)
	want := f.ChunkSize()
	f.SetChunkSize(999999)
	if f.ChunkSize() != want {
		t.Errorf("chunk size was reassigned after first computation")
	}
}
