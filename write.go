package main

import (
	"bufio"
	"io"
	"os"
)

// ---------------------------------------------------------------------------
// Output
// ---------------------------------------------------------------------------

// writeFolded emits the retained lines of every group, each terminated by a
// newline, in the order the filter produced.
func writeFolded(w io.Writer, groups []*stackGroup) error {
	bw := bufio.NewWriter(w)
	for _, g := range groups {
		for _, line := range g.lines {
			if _, err := bw.WriteString(line); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// writeOutput writes to the given path, or stdout for "-".
func writeOutput(path string, groups []*stackGroup) error {
	if path == "-" {
		return writeFolded(os.Stdout, groups)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeFolded(f, groups); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
