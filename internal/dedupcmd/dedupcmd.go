// Package dedupcmd is the command façade that runs the scanner, the
// staged hashing pipeline, and the sorter under one set of parameters.
// It collapses an app/command split into one type, preferring a single
// orchestration function over extra indirection layers.
package dedupcmd

import (
	"fmt"

	"github.com/initumX/onlyfind/internal/pipeline"
	"github.com/initumX/onlyfind/internal/scanner"
	"github.com/initumX/onlyfind/internal/sorter"
	"github.com/initumX/onlyfind/internal/types"
)

// DeduplicationCommand runs Scanner -> Pipeline -> Sorter as one unit
// and retains the resulting files/groups for inspection after Execute.
type DeduplicationCommand struct {
	files  []*types.File
	groups types.DuplicateGroups
}

// New constructs an empty command, ready for Execute.
func New() *DeduplicationCommand {
	return &DeduplicationCommand{}
}

// Execute runs the full scan -> dedupe -> sort sequence. It fails with
// ErrNoFilesFound if the scan yields zero candidate files - a
// recoverable signal the caller can report, not a panic.
func (c *DeduplicationCommand) Execute(
	params *types.DedupParams,
	stopped types.StoppedFunc,
	progress types.ProgressFunc,
	errCh chan error,
) (types.DuplicateGroups, *types.DedupStats, error) {
	if err := params.Validate(); err != nil {
		return types.DuplicateGroups{}, nil, err
	}

	sc := scanner.New(params, stopped, progress, errCh)
	files, scanStats, err := sc.Run()
	if err != nil {
		return types.DuplicateGroups{}, nil, fmt.Errorf("scan: %w", err)
	}
	if len(files) == 0 {
		return types.DuplicateGroups{}, nil, types.ErrNoFilesFound
	}
	c.files = files

	p := pipeline.New(params, stopped, progress)
	groups, dedupStats, err := p.Run(files)
	if err != nil {
		return types.DuplicateGroups{}, nil, fmt.Errorf("deduplicate: %w", err)
	}

	sorted := sorter.SortGroupsInPlace(append([]types.DuplicateGroup(nil), groups.Items()...), params.SortOrder)
	c.groups = sorted

	dedupStats.TotalElapsed += scanStats.Elapsed
	return sorted, dedupStats, nil
}

// Files returns the scanned candidate files from the last Execute call.
func (c *DeduplicationCommand) Files() []*types.File { return c.files }

// Groups returns the sorted, confirmed duplicate groups from the last
// Execute call.
func (c *DeduplicationCommand) Groups() types.DuplicateGroups { return c.groups }
