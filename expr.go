package main

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ---------------------------------------------------------------------------
// --select: Starlark expression over aggregated groups
// ---------------------------------------------------------------------------

// selector evaluates a user-supplied Starlark expression once per aggregated group
// with three bindings in scope:
//
//	leaf  (string)  leaf frame name
//	count (int)     aggregated sample count of the group
//	share (float)   the group's percentage of total samples
//
// The expression must yield a bool; anything else is an error, not truthiness.
type selector struct {
	src string
}

// newSelector parse-checks src so that a bad expression is reported before
// any input is read.
func newSelector(src string) (*selector, error) {
	if _, err := (&syntax.FileOptions{}).ParseExpr("--select", src, 0); err != nil {
		return nil, fmt.Errorf("invalid --select expression: %w", err)
	}
	return &selector{src: src}, nil
}

func (s *selector) keep(leaf string, count uint64, share float64) (bool, error) {
	thread := &starlark.Thread{Name: "select"}
	env := starlark.StringDict{
		"leaf":  starlark.String(leaf),
		"count": starlark.MakeUint64(count),
		"share": starlark.Float(share),
	}
	v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "--select", s.src, env)
	if err != nil {
		return false, fmt.Errorf("--select: %w", err)
	}
	b, ok := v.(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("--select: expression yielded %s, want bool", v.Type())
	}
	return bool(b), nil
}
