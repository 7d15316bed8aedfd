// Package pipeline implements the staged hashing pipeline that turns
// size-grouped candidates into confirmed duplicate groups. Stage-level
// concurrency (semaphore-bounded worker pool hashing many files at
// once, cancellation polled between stages and between groups) is
// adapted from a worker-pool/job-queue verifier pattern, re-targeted
// from progressive SHA-256 byte ranges onto a fixed front/middle/end/full
// xxHash64 stage sequence.
package pipeline

import (
	"time"

	"github.com/initumX/onlyfind/internal/chunkhash"
	"github.com/initumX/onlyfind/internal/grouper"
	"github.com/initumX/onlyfind/internal/types"
)

const progressInterval = 200

// stage describes one step of the hashing pipeline: the digest to
// compute and the file-size threshold below which a match at this
// stage is taken as a confirmed duplicate without further verification.
// A threshold of 0 means no early confirmation - every survivor carries
// on to the next stage (or, if this is the final stage, confirms
// unconditionally).
type stage struct {
	name      string
	hash      func(*types.File) types.Digest
	threshold int64
}

// stagesForMode returns the ordered stage sequence for a deduplication
// mode.
func stagesForMode(mode types.DeduplicationMode) []stage {
	switch mode {
	case types.ModeFast:
		return []stage{
			{name: "front", hash: chunkhash.Front, threshold: 128 * 1024},
		}
	case types.ModeFull:
		return []stage{
			{name: "front", hash: chunkhash.Front, threshold: 128 * 1024},
			{name: "middle", hash: chunkhash.Middle, threshold: 256 * 1024},
			{name: "full", hash: chunkhash.Full, threshold: 0},
		}
	default: // ModeNormal
		return []stage{
			{name: "front", hash: chunkhash.Front, threshold: 128 * 1024},
			{name: "middle", hash: chunkhash.Middle, threshold: 256 * 1024},
			{name: "end", hash: chunkhash.End, threshold: 384 * 1024},
		}
	}
}

// Pipeline refines size-based candidate groups into confirmed duplicate
// groups via a staged hash sequence.
type Pipeline struct {
	params   *types.DedupParams
	stopped  types.StoppedFunc
	progress types.ProgressFunc
}

// New constructs a Pipeline.
func New(params *types.DedupParams, stopped types.StoppedFunc, progress types.ProgressFunc) *Pipeline {
	if stopped == nil {
		stopped = types.NeverStopped
	}
	if progress == nil {
		progress = types.NoopProgress
	}
	return &Pipeline{params: params, stopped: stopped, progress: progress}
}

// Run groups files by the configured boost key, then refines each
// resulting group through the mode's stage sequence, returning the
// confirmed duplicate groups plus per-stage statistics.
func (p *Pipeline) Run(files []*types.File) (types.DuplicateGroups, *types.DedupStats, error) {
	start := time.Now()
	stats := &types.DedupStats{}

	groups, boostName := p.boostGroup(files)
	stats.Stages = append(stats.Stages, boostStageStat(boostName, files, groups, start))
	groupFiles := 0
	for _, g := range groups {
		groupFiles += len(g)
	}
	p.progress("size", groupFiles, &groupFiles)

	if p.stopped() {
		stats.Cancelled = true
		stats.TotalElapsed = time.Since(start)
		return types.NewDuplicateGroups(nil), stats, nil
	}

	var confirmed []types.DuplicateGroup
	current := groups
	stageList := stagesForMode(p.params.Mode)

	for i, st := range stageList {
		if p.stopped() {
			stats.Cancelled = true
			break
		}
		if len(current) == 0 {
			break
		}
		isLastStage := i == len(stageList)-1

		stageStart := time.Now()
		filesEntering := 0
		for _, g := range current {
			filesEntering += len(g)
		}

		assignChunkSizes(current)
		p.hashGroupsConcurrently(current, st.name, st.hash)

		var next [][]*types.File
		for _, g := range current {
			if p.stopped() {
				stats.Cancelled = true
				break
			}
			for _, sub := range partitionByDigest(g, st.hash) {
				if len(sub) < 2 {
					continue
				}
				// A match at the final stage is always confirmed - on
				// NORMAL/FULL that's the point of End/Full hashing; on
				// FAST the single Front stage is itself the final
				// stage, which is the documented "confirms all Front
				// survivors" trade-off (see Open Question decisions).
				// Earlier stages only early-confirm files small enough
				// that their partial hash already covers the whole
				// file (threshold), and otherwise carry the group
				// forward for deeper verification.
				if isLastStage || sub[0].Size <= st.threshold {
					confirmed = append(confirmed, types.DuplicateGroup{Size: sub[0].Size, Files: sub})
				} else {
					next = append(next, sub)
				}
			}
		}

		stats.Stages = append(stats.Stages, types.StageStat{
			Name:           st.name,
			FilesEntering:  filesEntering,
			GroupsEntering: len(current),
			Elapsed:        time.Since(stageStart),
		})

		current = next
		if stats.Cancelled {
			break
		}
	}

	stats.ConfirmedGroups = len(confirmed)
	for _, g := range confirmed {
		stats.ConfirmedFiles += len(g.Files)
	}
	stats.TotalElapsed = time.Since(start)

	return types.NewDuplicateGroups(confirmed), stats, nil
}

// boostGroup applies the configured boost-mode key to produce the
// initial candidate groups.
func (p *Pipeline) boostGroup(files []*types.File) ([][]*types.File, string) {
	switch p.params.Boost {
	case types.BoostSameSizeAndExt:
		m, _ := grouper.GroupBy(files, grouper.BySizeAndExt)
		groups := make([][]*types.File, 0, len(m))
		for _, g := range m {
			groups = append(groups, g)
		}
		return groups, "size+ext"
	case types.BoostSameSizeAndName:
		m, _ := grouper.GroupBy(files, grouper.BySizeAndName)
		groups := make([][]*types.File, 0, len(m))
		for _, g := range m {
			groups = append(groups, g)
		}
		return groups, "size+name"
	case types.BoostSameSizeAndFuzzyName:
		m, _ := grouper.GroupBy(files, grouper.BySizeAndNormalizedName)
		groups := make([][]*types.File, 0, len(m))
		for _, g := range m {
			groups = append(groups, g)
		}
		return groups, "size+fuzzy-name"
	default: // BoostSameSize
		m, _ := grouper.GroupBy(files, grouper.BySize)
		groups := make([][]*types.File, 0, len(m))
		for _, g := range m {
			groups = append(groups, g)
		}
		return groups, "size"
	}
}

func boostStageStat(name string, files []*types.File, groups [][]*types.File, start time.Time) types.StageStat {
	groupFiles := 0
	for _, g := range groups {
		groupFiles += len(g)
	}
	return types.StageStat{
		Name:           name,
		FilesEntering:  len(files),
		GroupsEntering: len(groups),
		Elapsed:        time.Since(start),
	}
}

// assignChunkSizes assigns each file's adaptive chunk size exactly once,
// before any partial hash of it is computed.
func assignChunkSizes(groups [][]*types.File) {
	for _, g := range groups {
		for _, f := range g {
			chunkhash.AssignChunkSize(f)
		}
	}
}

// hashGroupsConcurrently computes hash for every file across all groups
// using a semaphore-bounded worker pool, caching each result on the
// file itself (chunkhash's GetOrCompute cache). stageName is reported
// to the progress callback so callers see the documented stage
// vocabulary ("front"/"middle"/"end"/"full").
func (p *Pipeline) hashGroupsConcurrently(groups [][]*types.File, stageName string, hash func(*types.File) types.Digest) {
	workers := p.params.Workers
	if workers < 1 {
		workers = 1
	}
	sem := types.NewSemaphore(workers)

	total := 0
	for _, g := range groups {
		total += len(g)
	}

	done := make(chan struct{}, total)
	processed := 0
	for _, g := range groups {
		for _, f := range g {
			f := f
			sem.Acquire()
			go func() {
				defer sem.Release()
				hash(f)
				done <- struct{}{}
			}()
		}
	}
	for i := 0; i < total; i++ {
		<-done
		processed++
		if processed%progressInterval == 0 {
			p.progress(stageName, processed, &total)
		}
	}
}

// partitionByDigest splits group by the digest hash produces for each
// file, dropping files whose digest is empty (failed read - isolated
// out rather than merged into a false shared group).
func partitionByDigest(group []*types.File, hash func(*types.File) types.Digest) [][]*types.File {
	buckets := make(map[string][]*types.File)
	for _, f := range group {
		d := hash(f)
		if len(d) == 0 {
			continue
		}
		key := d.String()
		buckets[key] = append(buckets[key], f)
	}
	out := make([][]*types.File, 0, len(buckets))
	for _, sub := range buckets {
		out = append(out, sub)
	}
	return out
}
