// Package position converts between flat byte offsets and zero-based
// line/column pairs of a text buffer.
package position

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Position is a zero-based line/column pair. Column counts bytes from the
// start of the line.
type Position struct {
	Line   int
	Column int
}

// OutOfRangeError reports an offset or line/column outside a text buffer.
type OutOfRangeError struct {
	Offset int
	Line   int
	Column int
	Length int
	Lines  int

	byPosition bool
}

func (e *OutOfRangeError) Error() string {
	if e.byPosition {
		return fmt.Sprintf("position %d:%d out of range (%d lines)", e.Line, e.Column, e.Lines)
	}

	return fmt.Sprintf("offset %d out of range [0, %d]", e.Offset, e.Length)
}

// Lines is the line-start table of a text buffer. Each entry is the offset
// of the first byte of a line; the first entry is always 0.
type Lines struct {
	starts []int
	length int
}

// NewLines scans text once and records where every line starts. "\r\n" is
// a single terminator; "\n", "\r", U+2028 and U+2029 are terminators too.
func NewLines(text string) Lines {
	starts := []int{0}

	for i := 0; i < len(text); {
		switch c := text[i]; {
		case c == '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}

			i++
			starts = append(starts, i)
		case c == '\n':
			i++
			starts = append(starts, i)
		case c < utf8.RuneSelf:
			i++
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			i += size

			if r == '\u2028' || r == '\u2029' {
				starts = append(starts, i)
			}
		}
	}

	return Lines{starts: starts, length: len(text)}
}

// Count returns the number of lines.
func (l Lines) Count() int {
	return len(l.starts)
}

// Position converts offset to a line/column pair.
func (l Lines) Position(offset int) (Position, error) {
	if offset < 0 || offset > l.length {
		return Position{}, &OutOfRangeError{Offset: offset, Length: l.length, Lines: len(l.starts)}
	}

	line := sort.Search(len(l.starts), func(i int) bool { return l.starts[i] > offset }) - 1

	return Position{Line: line, Column: offset - l.starts[line]}, nil
}

// Offset converts a line/column pair to an offset. The column may point at
// any byte of the line including its terminator.
func (l Lines) Offset(line, column int) (int, error) {
	if line < 0 || line >= len(l.starts) || column < 0 || column > l.width(line) {
		return 0, &OutOfRangeError{Line: line, Column: column, Length: l.length, Lines: len(l.starts), byPosition: true}
	}

	return l.starts[line] + column, nil
}

// width is the largest valid column of line.
func (l Lines) width(line int) int {
	if line+1 < len(l.starts) {
		return l.starts[line+1] - l.starts[line] - 1
	}

	return l.length - l.starts[line]
}

// OffsetToPosition converts offset in text to a line/column pair.
func OffsetToPosition(text string, offset int) (Position, error) {
	return NewLines(text).Position(offset)
}

// PositionToOffset converts a line/column pair in text to an offset.
func PositionToOffset(text string, line, column int) (int, error) {
	return NewLines(text).Offset(line, column)
}
