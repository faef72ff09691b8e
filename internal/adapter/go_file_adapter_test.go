package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamlens.dev/pkg/streamlens/internal/syntax"
)

func TestLocalGoFileAdapter_Parse_Expression(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	src := "a.Pipe(Map(f))"

	root, err := adapter.Parse(context.Background(), "snippet.go", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, syntax.KindCall, root.Kind())

	start, end := root.Span()
	assert.Equal(t, 0, start)
	assert.Equal(t, len(src), end)

	children := root.Children()
	require.Len(t, children, 2)
	assert.Equal(t, syntax.KindSelector, children[0].Kind())
	assert.Equal(t, syntax.KindCall, children[1].Kind())
	assert.Equal(t, "Map(f)", syntax.Text(src, children[1]))

	inner := children[1].Children()
	require.Len(t, inner, 2)
	assert.Equal(t, syntax.KindIdentifier, inner[0].Kind())
	assert.Equal(t, "Map", syntax.Text(src, inner[0]))
}

func TestLocalGoFileAdapter_Parse_File(t *testing.T) {
	adapter := NewLocalGoFileAdapter()
	src := "// Package p is a test.\npackage p\n\nvar x = Take(3)\n"

	root, err := adapter.Parse(context.Background(), "p.go", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, syntax.Kind("File"), root.Kind())

	start, _ := root.Span()
	assert.Equal(t, 24, start)
	assert.NotEmpty(t, root.Children())
}

func TestLocalGoFileAdapter_Parse_InvalidSource(t *testing.T) {
	adapter := NewLocalGoFileAdapter()

	_, err := adapter.Parse(context.Background(), "broken.go", []byte("package foo\n func"))
	require.Error(t, err)

	_, err = adapter.Parse(context.Background(), "snippet.go", []byte("a.Pipe(map(f))"))
	require.Error(t, err)
}

func TestLocalGoFileAdapter_Parse_ContextCancellation(t *testing.T) {
	adapter := NewLocalGoFileAdapter()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Parse(ctx, "example.go", []byte("package main\n func main() {}"))
	require.ErrorIs(t, err, context.Canceled)
}
