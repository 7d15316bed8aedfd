package types

import (
	"errors"
	"fmt"
)

// DeduplicationMode selects how deep the pipeline hashes before
// confirming duplicates.
type DeduplicationMode int

const (
	ModeFast DeduplicationMode = iota
	ModeNormal
	ModeFull
)

func (m DeduplicationMode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeNormal:
		return "normal"
	case ModeFull:
		return "full"
	default:
		return "unknown"
	}
}

// BoostMode selects the initial, pre-hash grouping key.
type BoostMode int

const (
	BoostSameSize BoostMode = iota
	BoostSameSizeAndExt
	BoostSameSizeAndName
	BoostSameSizeAndFuzzyName
)

func (b BoostMode) String() string {
	switch b {
	case BoostSameSize:
		return "same-size"
	case BoostSameSizeAndExt:
		return "same-size-and-ext"
	case BoostSameSizeAndName:
		return "same-size-and-name"
	case BoostSameSizeAndFuzzyName:
		return "same-size-and-fuzzy-name"
	default:
		return "unknown"
	}
}

// SortOrder selects the secondary sort key used inside a duplicate group,
// after the absolute favourite-first ordering.
type SortOrder int

const (
	SortShortestPath SortOrder = iota
	SortShortestFilename
)

// DedupParams is the single configuration object accepted by the Scanner
// and the Deduplicator.
type DedupParams struct {
	RootDir       string
	MinSize       int64
	MaxSize       int64 // 0 means unbounded
	Extensions    []string
	FavouriteDirs []string
	ExcludedDirs  []string
	Mode          DeduplicationMode
	Boost         BoostMode
	SortOrder     SortOrder
	Workers       int
}

// Sentinel errors for the fatal configuration/scan cases.
var (
	ErrRootNotDirectory = errors.New("root directory does not exist or is not a directory")
	ErrInvalidParams    = errors.New("invalid deduplication parameters")
	ErrNoFilesFound     = errors.New("no candidate files found after filtering")
)

// Validate checks internal consistency of params.
func (p *DedupParams) Validate() error {
	if p.RootDir == "" {
		return fmt.Errorf("%w: root_dir is empty", ErrInvalidParams)
	}
	if p.MaxSize > 0 && p.MinSize > p.MaxSize {
		return fmt.Errorf("%w: min_size (%d) > max_size (%d)", ErrInvalidParams, p.MinSize, p.MaxSize)
	}
	if p.Workers < 1 {
		p.Workers = 1
	}
	return nil
}

// ProgressFunc reports pipeline/scanner progress. total == nil signals an
// unknown/indeterminate total.
type ProgressFunc func(stage string, current int, total *int)

// StoppedFunc is polled for cooperative cancellation. It must be cheap,
// lock-free, and idempotent from the core's viewpoint.
type StoppedFunc func() bool

// NoopProgress is a ProgressFunc that does nothing; safe default when the
// caller doesn't care about progress.
func NoopProgress(string, int, *int) {}

// NeverStopped is a StoppedFunc that never requests cancellation.
func NeverStopped() bool { return false }
