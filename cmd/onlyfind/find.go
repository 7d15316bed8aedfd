package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/initumX/onlyfind/internal/dedupcmd"
	"github.com/initumX/onlyfind/internal/progress"
	"github.com/initumX/onlyfind/internal/types"
	"github.com/spf13/cobra"
)

// findOptions holds CLI flags for the find command.
type findOptions struct {
	minSizeStr    string
	maxSizeStr    string
	extensions    []string
	favouriteDirs []string
	excludedDirs  []string
	mode          string
	boost         string
	sortOrder     string
	workers       int
	noProgress    bool
}

// newFindCmd creates the find subcommand.
func newFindCmd() *cobra.Command {
	opts := &findOptions{
		minSizeStr: "1",
		mode:       "normal",
		boost:      "size",
		sortOrder:  "shortest-path",
		workers:    runtime.NumCPU(),
	}

	cmd := &cobra.Command{
		Use:   "find [root]",
		Short: "Scan a directory tree and report groups of duplicate files",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFind(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.minSizeStr, "min-size", "m", opts.minSizeStr, "Minimum file size (e.g., 100, 1K, 10M, 1G)")
	cmd.Flags().StringVar(&opts.maxSizeStr, "max-size", "", "Maximum file size (0 or empty means unbounded)")
	cmd.Flags().StringSliceVarP(&opts.extensions, "ext", "x", nil, "Allowed file extensions (e.g. .jpg,.png); unset means all")
	cmd.Flags().StringSliceVarP(&opts.favouriteDirs, "favourite", "f", nil, "Directories whose files are kept first in each group")
	cmd.Flags().StringSliceVarP(&opts.excludedDirs, "exclude-dir", "e", nil, "Directories to skip entirely")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "Deduplication mode: fast, normal, or full")
	cmd.Flags().StringVar(&opts.boost, "boost", opts.boost, "Initial grouping key: size, extension, filename, fuzzy-filename (or fuzzy)")
	cmd.Flags().StringVar(&opts.sortOrder, "sort", opts.sortOrder, "Within-group sort order: shortest-path or shortest-filename")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", opts.workers, "Number of parallel workers")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")

	return cmd
}

// drainErrors consumes recoverable errors from a channel and writes
// them to stderr, clearing the progress bar line first to avoid visual
// collision.
func drainErrors(errs <-chan error) {
	for err := range errs {
		fmt.Fprintf(os.Stderr, "\r\033[Kerror: %v\n", err)
	}
}

func runFind(root string, opts *findOptions) error {
	minSize, err := parseSize(opts.minSizeStr)
	if err != nil {
		return fmt.Errorf("invalid --min-size: %w", err)
	}
	var maxSize int64
	if opts.maxSizeStr != "" {
		maxSize, err = parseSize(opts.maxSizeStr)
		if err != nil {
			return fmt.Errorf("invalid --max-size: %w", err)
		}
	}

	mode, err := dedupcmd.ParseDedupModeAlias(opts.mode)
	if err != nil {
		return err
	}
	boost, err := dedupcmd.ParseBoostAlias(opts.boost)
	if err != nil {
		return err
	}
	sortOrder, err := parseSortOrder(opts.sortOrder)
	if err != nil {
		return err
	}

	params := &types.DedupParams{
		RootDir:       root,
		MinSize:       minSize,
		MaxSize:       maxSize,
		Extensions:    opts.extensions,
		FavouriteDirs: opts.favouriteDirs,
		ExcludedDirs:  opts.excludedDirs,
		Mode:          mode,
		Boost:         boost,
		SortOrder:     sortOrder,
		Workers:       opts.workers,
	}

	errCh := make(chan error, 100)
	go drainErrors(errCh)
	defer close(errCh)

	bar := progress.New(!opts.noProgress, -1)
	cmd := dedupcmd.New()
	groups, stats, err := cmd.Execute(params, types.NeverStopped, bar.Callback(), errCh)
	if err != nil {
		return err
	}

	for _, g := range groups.Items() {
		fmt.Printf("%d bytes x %d copies:\n", g.Size, len(g.Files))
		for _, f := range g.Files {
			marker := " "
			if f.IsFromFavourite {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, f.Path)
		}
	}
	fmt.Fprintln(os.Stderr, stats.String())

	return nil
}

func parseSortOrder(s string) (types.SortOrder, error) {
	switch s {
	case "shortest-path":
		return types.SortShortestPath, nil
	case "shortest-filename":
		return types.SortShortestFilename, nil
	default:
		return 0, fmt.Errorf("invalid --sort %q", s)
	}
}
