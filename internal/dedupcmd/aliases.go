package dedupcmd

import (
	"fmt"
	"strings"

	"github.com/initumX/onlyfind/internal/types"
)

// BoostAliases maps the CLI/config vocabulary for initial grouping keys
// onto types.BoostMode values. "fuzzy-filename" and "fuzzy" are
// synonyms for the same mode.
var BoostAliases = map[string]types.BoostMode{
	"size":           types.BoostSameSize,
	"extension":      types.BoostSameSizeAndExt,
	"filename":       types.BoostSameSizeAndName,
	"fuzzy-filename": types.BoostSameSizeAndFuzzyName,
	"fuzzy":          types.BoostSameSizeAndFuzzyName,
}

// DedupModeAliases maps the CLI/config vocabulary for deduplication
// depth onto types.DeduplicationMode values.
var DedupModeAliases = map[string]types.DeduplicationMode{
	"fast":   types.ModeFast,
	"normal": types.ModeNormal,
	"full":   types.ModeFull,
}

// ParseBoostAlias resolves a boost-mode alias, case-insensitively.
func ParseBoostAlias(s string) (types.BoostMode, error) {
	m, ok := BoostAliases[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown boost mode %q: want one of size, extension, filename, fuzzy-filename, fuzzy", s)
	}
	return m, nil
}

// ParseDedupModeAlias resolves a deduplication-mode alias, case-insensitively.
func ParseDedupModeAlias(s string) (types.DeduplicationMode, error) {
	m, ok := DedupModeAliases[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown deduplication mode %q: want one of fast, normal, full", s)
	}
	return m, nil
}
