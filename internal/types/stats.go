package types

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ScanStats summarizes one scanner run; purely informational.
type ScanStats struct {
	FilesScanned  int64
	FilesMatched  int64
	BytesScanned  int64
	BytesMatched  int64
	EntriesSkipped int64
	Elapsed       time.Duration
}

func (s *ScanStats) String() string {
	return fmt.Sprintf("scanned %d (%s), matched %d (%s), skipped %d entries in %.1fs",
		s.FilesScanned, humanize.IBytes(uint64(s.BytesScanned)),
		s.FilesMatched, humanize.IBytes(uint64(s.BytesMatched)),
		s.EntriesSkipped, s.Elapsed.Seconds())
}

// StageStat records one pipeline stage's footprint.
type StageStat struct {
	Name            string
	FilesEntering   int
	GroupsEntering  int
	Elapsed         time.Duration
}

// DedupStats aggregates per-stage stats plus totals for one deduplication
// run.
type DedupStats struct {
	Stages          []StageStat
	ConfirmedGroups int
	ConfirmedFiles  int
	TotalElapsed    time.Duration
	Cancelled       bool
}

func (s *DedupStats) String() string {
	str := fmt.Sprintf("confirmed %d groups (%d files) in %.1fs",
		s.ConfirmedGroups, s.ConfirmedFiles, s.TotalElapsed.Seconds())
	if s.Cancelled {
		str += " (cancelled, partial result)"
	}
	return str
}
