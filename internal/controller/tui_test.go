package controller

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

func update(t *testing.T, model tea.Model, msg tea.Msg) (eventModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)
	em, ok := next.(eventModel)
	require.True(t, ok)

	return em, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(tea.QuitMsg)

	return ok
}

func TestEventModel_Records(t *testing.T) {
	em := newEventModel(ModeCollect)

	em, _ = update(t, em, tea.WindowSizeMsg{Width: 120, Height: 30})
	em, _ = update(t, em, recordMsg(testRecord(m.KindSubscribe, "")))
	em, _ = update(t, em, recordMsg(testRecord(m.KindNext, "42")))

	view := em.View()
	assert.Contains(t, view, "streamlens - live events")
	assert.Contains(t, view, "2 event(s)")
	assert.Contains(t, view, "subscribe")
	assert.Contains(t, view, "/proj/src/a.ts:4:10")
	assert.Contains(t, view, "42")
}

func TestEventModel_FollowsTail(t *testing.T) {
	em := newEventModel(ModeCollect)
	em, _ = update(t, em, tea.WindowSizeMsg{Width: 120, Height: 10})

	for i := range 50 {
		em, _ = update(t, em, recordMsg(testRecord(m.KindNext, fmt.Sprintf("value-%d", i))))
	}

	view := em.View()
	assert.Contains(t, view, "value-49")
	assert.NotContains(t, view, "value-0")
	assert.True(t, em.viewport.AtBottom())
}

func TestEventModel_StatusAndSummary(t *testing.T) {
	em := newEventModel(ModeView)

	em, _ = update(t, em, statusMsg("listening on localhost:9230 (json), 1 probe(s)"))
	em, _ = update(t, em, summaryMsg("PROBE TABLE\n"))

	view := em.View()
	assert.Contains(t, view, "streamlens - session replay")
	assert.Contains(t, view, "listening on localhost:9230")
	assert.Contains(t, view, "PROBE TABLE")
}

func TestEventModel_Finished(t *testing.T) {
	t.Run("collect mode quits", func(t *testing.T) {
		em, cmd := update(t, newEventModel(ModeCollect), finishedMsg{})
		assert.True(t, em.finished)
		assert.True(t, isQuit(cmd))
	})

	t.Run("view mode stays open", func(t *testing.T) {
		em, cmd := update(t, newEventModel(ModeView), finishedMsg{})
		assert.True(t, em.finished)
		assert.Nil(t, cmd)
		assert.Contains(t, em.View(), "end of session")
	})
}

func TestEventModel_QuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			em, cmd := update(t, newEventModel(ModeView), key)
			assert.True(t, em.quitting)
			assert.True(t, isQuit(cmd))
			assert.Empty(t, em.View())
		})
	}
}

func TestTUI_WithoutProgramPrintsLikeSimpleUI(t *testing.T) {
	cmd, out := newTestCommand()
	ui := NewTUI(cmd)
	ctx := context.Background()

	require.NoError(t, ui.Start(ctx, WithListMode()))
	ui.DisplayRecord(ctx, testRecord(m.KindNext, "7"))
	ui.Close(ctx)
	ui.Wait(ctx)

	assert.Equal(t, "03:04:05.006  next         /proj/src/a.ts:4:10  7\n", out.String())
}
