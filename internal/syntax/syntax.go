// Package syntax describes the tree shape the source locator needs from a
// parser: node kinds, byte spans and children.
package syntax

// Kind names the syntactic category of a node.
type Kind string

// Kinds the locator understands. Parsers may report any other kind.
const (
	KindCall       Kind = "CallExpr"
	KindIdentifier Kind = "Ident"
	KindSelector   Kind = "SelectorExpr"
	// KindIndex is a generic instantiation such as Take[int].
	KindIndex Kind = "IndexExpr"
)

// Node is one node of a parsed syntax tree.
type Node interface {
	Kind() Kind
	// Span returns the half-open byte range [start, end) of the node.
	Span() (start, end int)
	// Children returns the immediate children in source order.
	Children() []Node
}

// Contains reports whether offset falls inside n's span.
func Contains(n Node, offset int) bool {
	start, end := n.Span()
	return start <= offset && offset < end
}

// Text returns the source text covered by n.
func Text(src string, n Node) string {
	start, end := n.Span()
	if start < 0 || end > len(src) || start > end {
		return ""
	}

	return src[start:end]
}
