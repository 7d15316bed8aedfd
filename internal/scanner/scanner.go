// Package scanner provides parallel filesystem scanning for duplicate
// detection. It keeps a fan-out/fan-in directory-walking shape
// (goroutine per directory, semaphore-bounded, single collector
// goroutine) and applies per-file filtering for
// size/extension/trash/exclusion/favourite rules.
package scanner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/initumX/onlyfind/internal/types"
)

const progressInterval = 5000

// Scanner discovers files under one root directory matching the
// configured filters. It is single-use: construct with New, call Run
// once.
type Scanner struct {
	params  *types.DedupParams
	favRoots []string
	exclRoots []string

	stopped  types.StoppedFunc
	progress types.ProgressFunc
	errCh    chan error

	sem      types.Semaphore
	wg       sync.WaitGroup
	resultCh chan *types.File

	filesScanned   atomic.Int64
	filesMatched   atomic.Int64
	bytesScanned   atomic.Int64
	bytesMatched   atomic.Int64
	entriesSkipped atomic.Int64
	progressSeen   atomic.Int64

	cancelled atomic.Bool
}

// New constructs a Scanner. errCh, if non-nil, receives one error per
// recoverable per-entry failure (permission denied, transient stat
// error, etc.); it is never closed by the scanner and the caller owns
// draining it. Sends do not block: an error is dropped when errCh is
// full.
func New(params *types.DedupParams, stopped types.StoppedFunc, progress types.ProgressFunc, errCh chan error) *Scanner {
	if stopped == nil {
		stopped = types.NeverStopped
	}
	if progress == nil {
		progress = types.NoopProgress
	}
	return &Scanner{
		params:    params,
		favRoots:  normalizeRoots(params.FavouriteDirs),
		exclRoots: normalizeRoots(params.ExcludedDirs),
		stopped:   stopped,
		progress:  progress,
		errCh:     errCh,
	}
}

func normalizeRoots(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			continue
		}
		out = append(out, filepath.Clean(abs))
	}
	return out
}

// Run walks the root directory and returns matching files plus summary
// stats. A missing or non-directory root is fatal (ErrRootNotDirectory);
// everything else is best-effort and reported via errCh.
func (s *Scanner) Run() ([]*types.File, *types.ScanStats, error) {
	start := time.Now()

	root, err := filepath.Abs(s.params.RootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", types.ErrRootNotDirectory, err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil, types.ErrRootNotDirectory
	}

	workers := s.params.Workers
	if workers < 1 {
		workers = 1
	}
	s.sem = types.NewSemaphore(workers)
	s.resultCh = make(chan *types.File, 1000)

	var results []*types.File
	var collectorWg sync.WaitGroup
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for f := range s.resultCh {
			results = append(results, f)
		}
	}()

	s.walkDirectory(root, 0)
	s.wg.Wait()
	close(s.resultCh)
	collectorWg.Wait()

	stats := &types.ScanStats{
		FilesScanned:   s.filesScanned.Load(),
		FilesMatched:   s.filesMatched.Load(),
		BytesScanned:   s.bytesScanned.Load(),
		BytesMatched:   s.bytesMatched.Load(),
		EntriesSkipped: s.entriesSkipped.Load(),
		Elapsed:        time.Since(start),
	}
	return results, stats, nil
}

// walkDirectory spawns a goroutine processing dir and recursively
// fans out over its subdirectories, using a semaphore-bounded
// breadth-controlled depth-first traversal.
func (s *Scanner) walkDirectory(dir string, depth int) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.stopped() {
			s.cancelled.Store(true)
			return
		}
		if s.cancelled.Load() {
			return
		}

		s.sem.Acquire()
		entries, subdirs, err := s.listDirectory(dir, depth)
		s.sem.Release()
		if err != nil {
			s.sendError(fmt.Errorf("reading directory %s: %w", dir, err))
			return
		}

		for _, f := range entries {
			if s.stopped() {
				s.cancelled.Store(true)
				return
			}
			s.resultCh <- f
			s.filesMatched.Add(1)
			s.bytesMatched.Add(f.Size)
		}

		for _, sub := range subdirs {
			if s.cancelled.Load() {
				return
			}
			s.walkDirectory(sub, depth+1)
		}
	}()
}

// listDirectory reads one directory's entries, returning matching files
// and eligible subdirectories. This is the only place directory I/O
// occurs, bounded by the scanner's semaphore.
func (s *Scanner) listDirectory(dirPath string, depth int) (files []*types.File, subdirs []string, err error) {
	dir, err := os.Open(dirPath)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = dir.Close() }()

	const batchSize = 1000
	for {
		entries, readErr := dir.ReadDir(batchSize)
		if len(entries) == 0 {
			if readErr != nil && readErr != io.EOF {
				return files, subdirs, readErr
			}
			break
		}

		for _, entry := range entries {
			fullPath := filepath.Join(dirPath, entry.Name())

			if entry.IsDir() {
				if s.prefilterDir(fullPath) {
					subdirs = append(subdirs, fullPath)
				}
				continue
			}

			f, ok := s.processFile(fullPath, entry, depth)
			count := s.filesScanned.Add(1)
			if count%progressInterval == 0 {
				s.progress("scanning", int(count), nil)
			}
			if !ok {
				s.entriesSkipped.Add(1)
				continue
			}
			s.bytesScanned.Add(f.Size)
			files = append(files, f)
		}
	}

	return files, subdirs, nil
}

// prefilterDir reports whether a subdirectory should be descended into:
// not system trash, not excluded, and readable.
func (s *Scanner) prefilterDir(path string) bool {
	if isSystemTrash(path) {
		return false
	}
	if isExcluded(path, s.exclRoots) {
		return false
	}
	// Readability itself is checked lazily: listDirectory's os.Open on
	// this path will fail and report via errCh if it's inaccessible,
	// rather than duplicating a permission probe here.
	return true
}

// processFile applies the per-file filter chain: symlink rejection,
// size filter, extension filter, zero-byte rejection. Returns ok=false
// for any entry that is skipped; only a stat failure is also reported
// on errCh, every other skip is silent.
func (s *Scanner) processFile(path string, entry os.DirEntry, depth int) (*types.File, bool) {
	if entry.Type()&os.ModeSymlink != 0 {
		return nil, false
	}
	if !entry.Type().IsRegular() {
		return nil, false
	}

	info, err := entry.Info()
	if err != nil {
		s.sendError(fmt.Errorf("stat %s: %w", path, err))
		return nil, false
	}

	size := info.Size()
	if size == 0 {
		return nil, false
	}
	if size < s.params.MinSize {
		return nil, false
	}
	if s.params.MaxSize > 0 && size > s.params.MaxSize {
		return nil, false
	}

	name := entry.Name()
	ext := strings.ToLower(filepath.Ext(name))
	if !extensionAllowed(ext, s.params.Extensions) {
		return nil, false
	}

	pathDepth := strings.Count(strings.TrimRight(path, string(filepath.Separator)), string(filepath.Separator))
	fav := isFavourite(path, s.favRoots)

	return types.NewFile(path, name, ext, size, pathDepth, fav), true
}

func extensionAllowed(ext string, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

// isFavourite reports whether path lies at or below one of the
// normalized favourite roots.
func isFavourite(path string, favRoots []string) bool {
	if len(favRoots) == 0 {
		return false
	}
	clean := filepath.Clean(path)
	for _, root := range favRoots {
		if clean == root || strings.HasPrefix(clean, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// isExcluded reports whether path lies at or below one of the
// normalized excluded roots.
func isExcluded(path string, exclRoots []string) bool {
	if len(exclRoots) == 0 {
		return false
	}
	clean := filepath.Clean(path)
	for _, root := range exclRoots {
		if clean == root || strings.HasPrefix(clean, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// isSystemTrash reports whether path matches a known OS trash/recycle
// location, by substring match against its absolute form. Exact
// substrings are checked across all three platform families regardless
// of the host OS, since scanned trees may originate from any of them.
func isSystemTrash(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	slashed := filepath.ToSlash(abs)

	if strings.Contains(abs, `$Recycle.Bin`) || strings.Contains(abs, `\Recycler\`) {
		return true
	}
	if strings.Contains(slashed, "/.Trash/") || strings.HasSuffix(slashed, "/.Trash") {
		return true
	}
	if strings.Contains(slashed, ".local/share/Trash") || strings.Contains(slashed, "/.trash/") {
		return true
	}
	return false
}

func (s *Scanner) sendError(err error) {
	if s.errCh != nil {
		select {
		case s.errCh <- err:
		default:
		}
	}
}
