package main

import "fmt"

// ---------------------------------------------------------------------------
// Leaf-frame aggregation
// ---------------------------------------------------------------------------

// stackGroup collects every input line sharing one leaf frame. count is the
// sum of the member lines' sample counts; lines keep their input order.
type stackGroup struct {
	leaf  string
	count uint64
	lines []string
}

// aggregate groups folded lines by leaf frame. Input is not mutated. Blank
// lines carry no stack and are skipped; the first malformed non-blank line
// aborts the whole aggregation with an error naming its line number.
func aggregate(lines []string) (map[string]*stackGroup, error) {
	groups := make(map[string]*stackGroup)
	for i, line := range lines {
		if line == "" {
			continue
		}
		leaf, err := leafFrame(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		count, err := sampleCount(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		g, ok := groups[leaf]
		if !ok {
			g = &stackGroup{leaf: leaf}
			groups[leaf] = g
		}
		g.count += count
		g.lines = append(g.lines, line)
	}
	return groups, nil
}
