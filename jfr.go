package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grafana/jfr-parser/parser"
	"github.com/grafana/jfr-parser/parser/types"
)

// ---------------------------------------------------------------------------
// JFR → folded lines
// ---------------------------------------------------------------------------

// Async-profiler JFR recordings are collapsed to folded text before the
// pipeline runs so that JFR and text inputs are filtered identically. The
// sampled thread, when known, becomes a "[thread]" root frame.

func readJFRBytes(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gr.Close()
		return io.ReadAll(gr)
	}
	return io.ReadAll(f)
}

func resolveFrame(p *parser.Parser, sf types.StackFrame) string {
	method := p.GetMethod(sf.Method)
	if method == nil {
		return "<unknown>"
	}
	className := ""
	class := p.GetClass(method.Type)
	if class != nil {
		className = p.GetSymbolString(class.Name)
	}
	methodName := p.GetSymbolString(method.Name)
	if className == "" {
		return methodName
	}
	return className + "." + methodName
}

func resolveThread(p *parser.Parser, ref types.ThreadRef) string {
	idx, ok := p.Threads.IDMap[ref]
	if !ok {
		return ""
	}
	t := &p.Threads.Thread[idx]
	if t.JavaName != "" {
		return t.JavaName
	}
	return t.OsName
}

// parseJFRFolded collapses a JFR recording's samples of the requested event
// type (cpu, wall, alloc, lock) into folded lines, one per distinct stack.
func parseJFRFolded(path, eventType string) ([]string, error) {
	buf, err := readJFRBytes(path)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(buf, parser.Options{})
	agg := newFoldedAgg()

	for {
		typ, err := p.ParseEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse event: %w", err)
		}

		var stRef types.StackTraceRef
		var thRef types.ThreadRef
		var match bool

		switch {
		case eventType == "cpu" && typ == p.TypeMap.T_EXECUTION_SAMPLE:
			stRef = p.ExecutionSample.StackTrace
			thRef = p.ExecutionSample.SampledThread
			match = true
		case eventType == "wall" && typ == p.TypeMap.T_WALL_CLOCK_SAMPLE:
			stRef = p.WallClockSample.StackTrace
			thRef = p.WallClockSample.SampledThread
			match = true
		case eventType == "alloc" && typ == p.TypeMap.T_ALLOC_IN_NEW_TLAB:
			stRef = p.ObjectAllocationInNewTLAB.StackTrace
			thRef = p.ObjectAllocationInNewTLAB.EventThread
			match = true
		case eventType == "alloc" && typ == p.TypeMap.T_ALLOC_OUTSIDE_TLAB:
			stRef = p.ObjectAllocationOutsideTLAB.StackTrace
			thRef = p.ObjectAllocationOutsideTLAB.EventThread
			match = true
		case eventType == "alloc" && typ == p.TypeMap.T_ALLOC_SAMPLE:
			stRef = p.ObjectAllocationSample.StackTrace
			thRef = p.ObjectAllocationSample.EventThread
			match = true
		case eventType == "lock" && typ == p.TypeMap.T_MONITOR_ENTER:
			stRef = p.JavaMonitorEnter.StackTrace
			thRef = p.JavaMonitorEnter.EventThread
			match = true
		}

		if !match {
			continue
		}

		st := p.GetStacktrace(stRef)
		if st == nil || len(st.Frames) == 0 {
			continue
		}

		// JFR frames are leaf-first; reverse to root-first for folded format.
		n := len(st.Frames)
		parts := make([]string, 0, n+1)
		if thread := resolveThread(p, thRef); thread != "" {
			parts = append(parts, "["+thread+"]")
		}
		for i := n - 1; i >= 0; i-- {
			parts = append(parts, resolveFrame(p, st.Frames[i]))
		}

		agg.add(strings.Join(parts, ";"), 1)
	}

	return agg.folded(), nil
}
