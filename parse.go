package main

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Folded-stack line parsing
// ---------------------------------------------------------------------------

// A folded line is "frame1;frame2;...;frameN COUNT": semicolon-separated
// frames root-first, then a single space and a non-negative decimal count.
// Frame names may contain spaces, so the count field is the token after the
// last space on the line.

var (
	errMalformedLine  = errors.New("malformed stack line")
	errMalformedCount = errors.New("malformed sample count")
)

// leafFrame returns the innermost frame of a folded line: the substring
// between the last ';' and the count field. A line with no ';' is a
// single-frame stack and the whole frame portion is the leaf.
func leafFrame(line string) (string, error) {
	sp := strings.LastIndexByte(line, ' ')
	if sp == -1 {
		return "", fmt.Errorf("%w: no sample count field", errMalformedLine)
	}
	frames := line[:sp]
	leaf := frames[strings.LastIndexByte(frames, ';')+1:]
	if leaf == "" {
		return "", fmt.Errorf("%w: empty leaf frame", errMalformedLine)
	}
	return leaf, nil
}

// sampleCount parses the count field of a folded line.
func sampleCount(line string) (uint64, error) {
	sp := strings.LastIndexByte(line, ' ')
	if sp == -1 {
		return 0, fmt.Errorf("%w: no sample count field", errMalformedLine)
	}
	tok := line[sp+1:]
	n, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errMalformedCount, tok)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Input readers
// ---------------------------------------------------------------------------

// openReader opens a file for reading, handling gzip and stdin ("-").
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &gzipReadCloser{gz: gr, f: f}, nil
	}
	return f, nil
}

type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }
func (g *gzipReadCloser) Close() error {
	g.gz.Close()
	return g.f.Close()
}

// readFoldedLines reads raw lines without interpreting them. Blank lines are
// kept so that parse errors can report accurate line numbers.
func readFoldedLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	// deep stacks produce long lines; the default 64K token limit is too small
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ---------------------------------------------------------------------------
// Unified input: auto-detect JFR / pprof / folded text
// ---------------------------------------------------------------------------

func isJFRPath(path string) bool {
	if path == "-" {
		return false
	}
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".jfr") || strings.HasSuffix(p, ".jfr.gz")
}

func isPprofPath(path string) bool {
	if path == "-" {
		return false
	}
	p := strings.ToLower(path)
	return strings.HasSuffix(p, ".pb.gz") || strings.HasSuffix(p, ".pb") || strings.HasSuffix(p, ".pprof")
}

// readInput loads the input file as folded lines. JFR and pprof profiles are
// collapsed to folded text first; everything else (including stdin) is read
// as folded text, transparently gunzipped when the path ends in ".gz".
func readInput(path, eventType string) ([]string, error) {
	switch {
	case isJFRPath(path):
		return parseJFRFolded(path, eventType)
	case isPprofPath(path):
		return parsePprofFolded(path)
	}
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return readFoldedLines(rc)
}
