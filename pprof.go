package main

import (
	"os"
	"strings"

	"github.com/google/pprof/profile"
)

// ---------------------------------------------------------------------------
// pprof → folded lines
// ---------------------------------------------------------------------------

// parsePprofFolded collapses a pprof protobuf profile (optionally gzipped,
// profile.Parse handles both) into folded lines.
func parsePprofFolded(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := profile.Parse(f)
	if err != nil {
		return nil, err
	}
	return collapsePprof(p), nil
}

// collapsePprof renders each sample's stack root-first. pprof stores
// locations leaf-first and inlined call chains innermost-first, so both are
// walked in reverse. Sample value index 0 is the sample count.
func collapsePprof(p *profile.Profile) []string {
	agg := newFoldedAgg()
	for _, s := range p.Sample {
		var frames []string
		for i := len(s.Location) - 1; i >= 0; i-- {
			loc := s.Location[i]
			for j := len(loc.Line) - 1; j >= 0; j-- {
				if fn := loc.Line[j].Function; fn != nil && fn.Name != "" {
					frames = append(frames, fn.Name)
				}
			}
		}
		if len(frames) == 0 || len(s.Value) == 0 || s.Value[0] <= 0 {
			continue
		}
		agg.add(strings.Join(frames, ";"), uint64(s.Value[0]))
	}
	return agg.folded()
}
