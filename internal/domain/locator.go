package domain

import (
	"log/slog"

	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/position"
	"streamlens.dev/pkg/streamlens/internal/syntax"
)

// AllowList is the set of operator names the locator treats as
// instrumentable. Matching is exact and case-sensitive.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList from names, ignoring empty entries.
func NewAllowList(names ...string) AllowList {
	allow := make(AllowList, len(names))

	for _, name := range names {
		if name == "" {
			continue
		}

		allow[name] = struct{}{}
	}

	return allow
}

// Allows reports whether name is instrumentable.
func (a AllowList) Allows(name string) bool {
	_, ok := a[name]
	return ok
}

// Candidate is an instrumentable operator identifier found in source text.
type Candidate = m.Candidate

// Locator maps editor cursor positions to instrumentable operator names.
// Implementations keep no state between calls.
type Locator interface {
	// Locate finds the candidate at offset, if any.
	Locate(file, text string, root syntax.Node, offset int) (Candidate, bool)
	// LocateRange finds the candidate for a selection. The selection start is used.
	LocateRange(file, text string, root syntax.Node, start, end int) (Candidate, bool)
	// Candidates lists every instrumentable call in source order.
	Candidates(file, text string, root syntax.Node) []Candidate
}

type locator struct {
	allow AllowList
}

// NewLocator creates a Locator qualifying candidates against allow.
func NewLocator(allow AllowList) Locator {
	return &locator{allow: allow}
}

func (l *locator) Locate(file, text string, root syntax.Node, offset int) (Candidate, bool) {
	if root == nil {
		return Candidate{}, false
	}

	ident := candidateIdentifier(smallestEnclosing(root, offset))
	if ident == nil {
		return Candidate{}, false
	}

	return l.qualify(file, text, ident)
}

func (l *locator) LocateRange(file, text string, root syntax.Node, start, end int) (Candidate, bool) {
	if end < start {
		start = end
	}

	return l.Locate(file, text, root, start)
}

func (l *locator) Candidates(file, text string, root syntax.Node) []Candidate {
	var (
		found []Candidate
		seen  = map[int]struct{}{}
	)

	var walk func(n syntax.Node)
	walk = func(n syntax.Node) {
		if n.Kind() == syntax.KindCall {
			if ident := candidateIdentifier(n); ident != nil {
				if candidate, ok := l.qualify(file, text, ident); ok {
					if _, dup := seen[candidate.Start]; !dup {
						seen[candidate.Start] = struct{}{}
						found = append(found, candidate)
					}
				}
			}
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	if root != nil {
		walk(root)
	}

	return found
}

func (l *locator) qualify(file, text string, ident syntax.Node) (Candidate, bool) {
	name := syntax.Text(text, ident)
	if !l.allow.Allows(name) {
		return Candidate{}, false
	}

	start, end := ident.Span()

	pos, err := position.OffsetToPosition(text, start)
	if err != nil {
		slog.Debug("candidate span outside text", "file", file, "name", name, "error", err)
		return Candidate{}, false
	}

	return Candidate{
		Name:     name,
		Location: m.Location{File: file, Line: pos.Line, Column: pos.Column},
		Start:    start,
		End:      end,
	}, true
}

// smallestEnclosing descends from root, taking the leftmost child that
// contains offset at every level.
func smallestEnclosing(root syntax.Node, offset int) syntax.Node {
	node := root

	for {
		next := childContaining(node, offset)
		if next == nil {
			return node
		}

		node = next
	}
}

func childContaining(n syntax.Node, offset int) syntax.Node {
	for _, child := range n.Children() {
		if syntax.Contains(child, offset) {
			return child
		}
	}

	return nil
}

// candidateIdentifier returns the identifier naming the operator at n: n
// itself when it is an identifier, the callee name when it is a call.
func candidateIdentifier(n syntax.Node) syntax.Node {
	switch n.Kind() {
	case syntax.KindIdentifier:
		return n
	case syntax.KindCall:
		for i, child := range n.Children() {
			switch child.Kind() {
			case syntax.KindIdentifier:
				return child
			case syntax.KindSelector, syntax.KindIndex:
				if i == 0 {
					return calleeIdentifier(child)
				}
			}
		}
	case syntax.KindSelector:
		return lastIdentifier(n)
	}

	return nil
}

// calleeIdentifier unwraps selectors (pkg.Op) and generic instantiations
// (Op[int]) down to the operator name.
func calleeIdentifier(n syntax.Node) syntax.Node {
	switch n.Kind() {
	case syntax.KindIdentifier:
		return n
	case syntax.KindSelector:
		return lastIdentifier(n)
	case syntax.KindIndex:
		if children := n.Children(); len(children) > 0 {
			return calleeIdentifier(children[0])
		}
	}

	return nil
}

func lastIdentifier(n syntax.Node) syntax.Node {
	var last syntax.Node

	for _, child := range n.Children() {
		if child.Kind() == syntax.KindIdentifier {
			last = child
		}
	}

	return last
}
