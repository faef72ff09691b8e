package probe

import (
	"bufio"
	"os"
	"runtime"
	"strings"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// NewHere creates a Probe located at its caller, the way an instrumented
// process reports positions. skip counts extra frames above the caller, as
// in runtime.Caller.
//
// Go frames carry no column, so the column is the first call of operator on
// the caller's line, for example "Take" in stream.Take[int](2). When the
// source cannot be read or the call is not found, the first non-blank byte
// of the line is used.
func NewHere(sink Sink, operator string, skip int, opts ...Option) *Probe {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return New(m.Location{File: "unknown", Line: 0, Column: 0}, sink, opts...)
	}

	static := m.Location{
		File:   file,
		Line:   line - 1,
		Column: callColumn(file, line, operator),
	}

	return New(static.Runtime(), sink, opts...)
}

// callColumn returns the zero-based byte column of operator followed by
// "(" or "[" on the one-based line of file. The result is never below
// m.RuntimeColumnSkew so the runtime column stays valid.
func callColumn(file string, line int, operator string) int {
	text, ok := sourceLine(file, line)
	if !ok {
		return m.RuntimeColumnSkew
	}

	column := -1

	if operator != "" {
		for offset := 0; offset < len(text); {
			i := strings.Index(text[offset:], operator)
			if i < 0 {
				break
			}

			start := offset + i
			end := start + len(operator)

			if end < len(text) && (text[end] == '(' || text[end] == '[') && !identByte(text, start-1) {
				column = start
				break
			}

			offset = end
		}
	}

	if column < 0 {
		column = len(text) - len(strings.TrimLeft(text, " \t"))
	}

	return max(column, m.RuntimeColumnSkew)
}

func identByte(text string, i int) bool {
	if i < 0 {
		return false
	}

	c := text[i]

	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func sourceLine(file string, line int) (string, bool) {
	f, err := os.Open(file)
	if err != nil {
		return "", false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		if n == line {
			return scanner.Text(), true
		}
	}

	return "", false
}
