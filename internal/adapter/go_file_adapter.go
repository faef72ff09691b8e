package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"streamlens.dev/pkg/streamlens/internal/syntax"
)

// SyntaxAdapter turns source text into the syntax tree the locator walks.
// It keeps the parser choice out of the domain layer.
type SyntaxAdapter interface {
	// Parse builds a syntax tree for the provided filename/source pair.
	Parse(ctx context.Context, filename string, src []byte) (syntax.Node, error)
}

// LocalGoFileAdapter provides a SyntaxAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse parses a whole Go file when src starts with a package clause and a
// single expression otherwise, so editor snippets can be located too.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, filename string, src []byte) (syntax.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileSet := token.NewFileSet()

	if looksLikeFile(src) {
		file, err := parser.ParseFile(fileSet, filename, src, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}

		return newGoNode(fileSet.File(file.Package), file), nil
	}

	expr, err := parser.ParseExprFrom(fileSet, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse expression in %s: %w", filename, err)
	}

	return newGoNode(fileSet.File(expr.Pos()), expr), nil
}

func looksLikeFile(src []byte) bool {
	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}

		return strings.HasPrefix(trimmed, "package ") || strings.HasPrefix(trimmed, "/*")
	}

	return false
}

// goNode adapts an ast.Node to syntax.Node using byte offsets of its token.File.
type goNode struct {
	node ast.Node
	file *token.File
}

func newGoNode(file *token.File, node ast.Node) *goNode {
	return &goNode{node: node, file: file}
}

func (n *goNode) Kind() syntax.Kind {
	switch n.node.(type) {
	case *ast.CallExpr:
		return syntax.KindCall
	case *ast.Ident:
		return syntax.KindIdentifier
	case *ast.SelectorExpr:
		return syntax.KindSelector
	case *ast.IndexExpr, *ast.IndexListExpr:
		return syntax.KindIndex
	}

	return syntax.Kind(strings.TrimPrefix(fmt.Sprintf("%T", n.node), "*ast."))
}

func (n *goNode) Span() (int, int) {
	return n.offset(n.node.Pos()), n.offset(n.node.End())
}

func (n *goNode) offset(pos token.Pos) int {
	if !pos.IsValid() || n.file == nil {
		return -1
	}

	base := token.Pos(n.file.Base())
	if pos < base || int(pos-base) > n.file.Size() {
		return -1
	}

	return n.file.Offset(pos)
}

// Children collects the nodes ast.Inspect visits one level below n.
func (n *goNode) Children() []syntax.Node {
	var children []syntax.Node

	ast.Inspect(n.node, func(child ast.Node) bool {
		if child == nil {
			return false
		}

		if child == n.node {
			return true
		}

		children = append(children, newGoNode(n.file, child))

		return false
	})

	return children
}
