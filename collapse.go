package main

import "fmt"

// ---------------------------------------------------------------------------
// Folded-line emission for binary profile formats
// ---------------------------------------------------------------------------

// foldedAgg merges identical stacks while they are collapsed out of a binary
// profile, keeping first-seen order so conversion is deterministic.
type foldedAgg struct {
	order  []string
	counts map[string]uint64
}

func newFoldedAgg() *foldedAgg {
	return &foldedAgg{counts: make(map[string]uint64)}
}

func (a *foldedAgg) add(stack string, n uint64) {
	if _, ok := a.counts[stack]; !ok {
		a.order = append(a.order, stack)
	}
	a.counts[stack] += n
}

// folded renders the aggregated stacks as folded text lines.
func (a *foldedAgg) folded() []string {
	lines := make([]string, 0, len(a.order))
	for _, stack := range a.order {
		lines = append(lines, fmt.Sprintf("%s %d", stack, a.counts[stack]))
	}
	return lines
}
