package main

import "strings"

// ---------------------------------------------------------------------------
// Stack-depth truncation
// ---------------------------------------------------------------------------

// truncateStacks trims every line to at most limit frames counted from the
// leaf, dropping frames from the root end. limit 0 means unlimited and
// leaves the groups untouched. Counts and leaf frames never change.
func truncateStacks(groups []*stackGroup, limit int) {
	if limit == 0 {
		return
	}
	for _, g := range groups {
		for i, line := range g.lines {
			g.lines[i] = truncateLine(line, limit)
		}
	}
}

// truncateLine walks backward from the count field counting ';' delimiters;
// once limit delimiters were seen, everything before the last one goes. A
// stack with limit or fewer frames runs out of delimiters first and is
// returned unchanged.
func truncateLine(line string, limit int) string {
	sp := strings.LastIndexByte(line, ' ')
	if sp == -1 {
		return line
	}
	pos := sp
	for i := 0; i < limit && pos != -1; i++ {
		pos = strings.LastIndexByte(line[:pos], ';')
	}
	if pos == -1 {
		return line
	}
	return line[pos+1:]
}
