package model

// Candidate is an instrumentable operator identifier found in source text.
type Candidate struct {
	Name     string
	Location Location // static encoding
	Start    int      // byte offset of the identifier
	End      int
}
