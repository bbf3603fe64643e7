package main

import (
	"fmt"
	"regexp"
	"sort"
)

// ---------------------------------------------------------------------------
// Group filtering
// ---------------------------------------------------------------------------

// compileShowPatterns compiles --show values with full-string semantics: a
// leaf frame passes only when a whole pattern matches the whole name, not a
// substring of it.
func compileShowPatterns(exprs []string) ([]*regexp.Regexp, error) {
	var patterns []*regexp.Regexp
	for _, expr := range exprs {
		re, err := regexp.Compile(`\A(?:` + expr + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("invalid --show pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// filterGroups keeps the groups whose share of the total sample count is
// strictly above cutoff percent and, when patterns are given, whose leaf
// frame matches at least one of them. A non-nil selector is consulted last.
// Groups come back in ascending leaf-name order so that output is
// deterministic; lines inside a group stay in input order.
//
// A zero total means no group can have a positive share, so nothing passes.
func filterGroups(groups map[string]*stackGroup, cutoff float64, patterns []*regexp.Regexp, sel *selector) ([]*stackGroup, error) {
	var total uint64
	for _, g := range groups {
		total += g.count
	}
	if total == 0 {
		return nil, nil
	}

	leaves := make([]string, 0, len(groups))
	for leaf := range groups {
		leaves = append(leaves, leaf)
	}
	sort.Strings(leaves)

	var kept []*stackGroup
	for _, leaf := range leaves {
		g := groups[leaf]
		share := float64(g.count) / float64(total)
		if share <= cutoff/100 {
			continue
		}
		if len(patterns) > 0 {
			matched := false
			for _, re := range patterns {
				if re.MatchString(leaf) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if sel != nil {
			keep, err := sel.keep(leaf, g.count, 100*share)
			if err != nil {
				return nil, err
			}
			if !keep {
				continue
			}
		}
		kept = append(kept, g)
	}
	return kept, nil
}
