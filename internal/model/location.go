// Package model defines the data structures shared by the probe, the
// transport and the correlator.
package model

import "fmt"

// RuntimeColumnSkew is the fixed difference between a statically resolved
// column and the column an instrumented process reports for the same text:
//
//	static.Column == runtime.Column + RuntimeColumnSkew
//
// Every comparison between the two encodings goes through this constant.
// A static column below the skew has no runtime form: its runtime column
// would be negative, which the wire decoder rejects. Such points are
// refused at registration.
const RuntimeColumnSkew = 1

// Path represents a file system path.
type Path string

// Location identifies a position in a source file. Line and Column are
// zero-based in the static encoding produced by the source locator.
type Location struct {
	File   string `yaml:"file" json:"file" cbor:"file"`
	Line   int    `yaml:"line" json:"line" cbor:"line"`
	Column int    `yaml:"column" json:"column" cbor:"column"`
}

// Runtime converts a statically resolved location into the encoding an
// instrumented process reports for it.
func (l Location) Runtime() Location {
	l.Column -= RuntimeColumnSkew
	return l
}

// Static converts a runtime-reported location into the static encoding.
func (l Location) Static() Location {
	l.Column += RuntimeColumnSkew
	return l
}

// Valid reports whether the location satisfies the registration contract.
func (l Location) Valid() bool {
	return l.File != "" && l.Line >= 0 && l.Column >= 0
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
