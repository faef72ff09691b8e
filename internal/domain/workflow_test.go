package domain

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"streamlens.dev/pkg/streamlens/internal/adapter"
	adaptermocks "streamlens.dev/pkg/streamlens/internal/adapter/mocks"
	"streamlens.dev/pkg/streamlens/internal/controller"
	controllermocks "streamlens.dev/pkg/streamlens/internal/controller/mocks"
	m "streamlens.dev/pkg/streamlens/internal/model"
	"streamlens.dev/pkg/streamlens/internal/position"
	"streamlens.dev/pkg/streamlens/internal/telemetry"
)

// Line 3 holds Map at column 30 and Take at column 53.
const pipelineSource = "package main\n\nfunc main() {\n\tstream.Pipe[int](src, stream.Map[int, int](double), Take[int](3))\n}\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newTestWorkflow(t *testing.T, ui controller.UI, store adapter.ProbeStore) Workflow {
	t.Helper()

	if store == nil {
		store = adapter.NewProbeStore()
	}

	return NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalGoFileAdapter(),
		store,
		adapter.NewSessionStore(),
		ui,
		NewLocator(NewAllowList("Map", "Take", "Filter")),
	)
}

func expectListSession(ui *controllermocks.MockUI) {
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().Close(mock.Anything).Return().Once()
}

func TestWorkflow_Locate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	writeFile(t, file, pipelineSource)

	ui := controllermocks.NewMockUI(t)
	expectListSession(ui)
	ui.EXPECT().DisplayCandidates(mock.Anything, mock.MatchedBy(func(candidates []m.Candidate) bool {
		return len(candidates) == 1 &&
			candidates[0].Name == "Map" &&
			candidates[0].Location == m.Location{File: file, Line: 3, Column: 30}
	})).Return().Once()

	err := newTestWorkflow(t, ui, nil).Locate(context.Background(), LocateArgs{
		File: m.Path(file), Line: 3, Column: 31,
	})
	require.NoError(t, err)
}

func TestWorkflow_Locate_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	writeFile(t, file, pipelineSource)

	wf := newTestWorkflow(t, controllermocks.NewMockUI(t), nil)

	t.Run("no operator at position", func(t *testing.T) {
		err := wf.Locate(context.Background(), LocateArgs{File: m.Path(file), Line: 3, Column: 19})
		assert.ErrorIs(t, err, ErrNoCandidate)
	})

	t.Run("position out of range", func(t *testing.T) {
		err := wf.Locate(context.Background(), LocateArgs{File: m.Path(file), Line: 40, Column: 0})

		var outOfRange *position.OutOfRangeError
		assert.ErrorAs(t, err, &outOfRange)
	})

	t.Run("missing file", func(t *testing.T) {
		err := wf.Locate(context.Background(), LocateArgs{File: m.Path(filepath.Join(dir, "nope.go"))})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWorkflow_Register(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	probes := m.Path(filepath.Join(dir, "probes.yaml"))
	writeFile(t, file, pipelineSource)

	want := m.Location{File: file, Line: 3, Column: 53}

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Twice()
	ui.EXPECT().Close(mock.Anything).Return().Twice()
	ui.EXPECT().DisplayRegistered(mock.Anything, want, true).Return().Once()
	ui.EXPECT().DisplayRegistered(mock.Anything, want, false).Return().Once()

	wf := newTestWorkflow(t, ui, nil)
	args := RegisterArgs{Probes: probes, File: m.Path(file), Line: 3, Column: 55}

	require.NoError(t, wf.Register(context.Background(), args))
	require.NoError(t, wf.Register(context.Background(), args))

	points, err := adapter.NewProbeStore().LoadProbes(probes)
	require.NoError(t, err)
	assert.Equal(t, []m.Location{want}, points)
}

func TestWorkflow_Register_Exact(t *testing.T) {
	dir := t.TempDir()
	probes := m.Path(filepath.Join(dir, "probes.yaml"))
	file := filepath.Join(dir, "src", "a.ts")

	want := m.Location{File: file, Line: 4, Column: 10}

	ui := controllermocks.NewMockUI(t)
	expectListSession(ui)
	ui.EXPECT().DisplayRegistered(mock.Anything, want, true).Return().Once()

	err := newTestWorkflow(t, ui, nil).Register(context.Background(), RegisterArgs{
		Probes: probes, File: m.Path(file), Line: 4, Column: 10, Exact: true,
	})
	require.NoError(t, err)

	t.Run("negative position is rejected", func(t *testing.T) {
		err := newTestWorkflow(t, controllermocks.NewMockUI(t), nil).Register(context.Background(), RegisterArgs{
			Probes: probes, File: m.Path(file), Line: -1, Column: 0, Exact: true,
		})
		assert.ErrorContains(t, err, "invalid probe point")
	})
}

func TestWorkflow_Register_StoreErrors(t *testing.T) {
	probes := m.Path(filepath.Join(t.TempDir(), "probes.yaml"))
	point := m.Location{File: "/proj/a.go", Line: 1, Column: 1}

	t.Run("load", func(t *testing.T) {
		store := adaptermocks.NewMockProbeStore(t)
		store.EXPECT().LoadProbes(probes).Return(nil, errors.New("disk gone")).Once()

		_, err := RegisterPoint(context.Background(), store, probes, point)
		assert.ErrorContains(t, err, "load probes: disk gone")
	})

	t.Run("save", func(t *testing.T) {
		saveErr := errors.New("read-only")
		store := adaptermocks.NewMockProbeStore(t)
		store.EXPECT().LoadProbes(probes).Return(nil, nil).Once()
		store.EXPECT().SaveProbes(probes, []m.Location{point}).Return(saveErr).Once()

		_, err := RegisterPoint(context.Background(), store, probes, point)
		assert.ErrorIs(t, err, saveErr)
	})

	t.Run("column zero is rejected before loading", func(t *testing.T) {
		store := adaptermocks.NewMockProbeStore(t)

		_, err := RegisterPoint(context.Background(), store, probes, m.Location{File: "/proj/a.go", Line: 1, Column: 0})
		assert.ErrorIs(t, err, ErrUnreportableColumn)
	})

	t.Run("duplicate skips save", func(t *testing.T) {
		store := adaptermocks.NewMockProbeStore(t)
		store.EXPECT().LoadProbes(probes).Return([]m.Location{point}, nil).Once()

		added, err := RegisterPoint(context.Background(), store, probes, point)
		require.NoError(t, err)
		assert.False(t, added)
	})
}

func TestWorkflow_List(t *testing.T) {
	dir := t.TempDir()
	probes := m.Path(filepath.Join(dir, "probes.yaml"))
	points := []m.Location{
		{File: "/proj/src/a.ts", Line: 4, Column: 10},
		{File: "/proj/src/b.ts", Line: 1, Column: 2},
	}
	require.NoError(t, adapter.NewProbeStore().SaveProbes(probes, points))

	ui := controllermocks.NewMockUI(t)
	expectListSession(ui)
	ui.EXPECT().DisplayProbes(mock.Anything, points).Return().Once()

	require.NoError(t, newTestWorkflow(t, ui, nil).List(context.Background(), ListArgs{Probes: probes}))
}

func TestWorkflow_List_Candidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), pipelineSource)
	writeFile(t, filepath.Join(dir, "sub", "filter.go"), "package sub\n\nvar evens = Filter(isEven)\n")
	writeFile(t, filepath.Join(dir, "broken.go"), "package main\n\nfunc (\n")

	ui := controllermocks.NewMockUI(t)
	expectListSession(ui)

	var got []m.Candidate

	ui.EXPECT().DisplayCandidates(mock.Anything, mock.Anything).
		Run(func(_ context.Context, candidates []m.Candidate) { got = candidates }).
		Return().Once()

	err := newTestWorkflow(t, ui, nil).List(context.Background(), ListArgs{
		Paths:      []m.Path{m.Path(dir + "/...")},
		Candidates: true,
		Threads:    2,
	})
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, candidate := range got {
		names = append(names, candidate.Name)
	}

	assert.Equal(t, []string{"Map", "Take", "Filter"}, names)
	assert.Equal(t, m.Location{File: filepath.Join(dir, "sub", "filter.go"), Line: 2, Column: 12}, got[2].Location)
}

func TestWorkflow_Collect(t *testing.T) {
	dir := t.TempDir()
	probes := m.Path(filepath.Join(dir, "probes.yaml"))
	events := m.Path(filepath.Join(dir, "events"))
	point := m.Location{File: "/proj/src/a.ts", Line: 4, Column: 10}

	require.NoError(t, os.MkdirAll(string(events), 0o755))
	require.NoError(t, adapter.NewProbeStore().SaveProbes(probes, []m.Location{point}))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	recorded := make(chan m.Record, 8)

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayCollectorInfo(mock.Anything, mock.MatchedBy(func(info controller.CollectorInfo) bool {
		return info.Probes == 1 && info.Codec == telemetry.CodecJSON && strings.HasPrefix(info.Session, string(events))
	})).Return().Once()
	ui.EXPECT().DisplayRecord(mock.Anything, mock.Anything).
		Run(func(_ context.Context, record m.Record) { recorded <- record }).
		Return().Twice()
	ui.EXPECT().DisplaySummary(mock.Anything, mock.MatchedBy(func(summary controller.Summary) bool {
		return summary.Records == 2 && summary.Counts[point][m.KindNext] == 1
	})).Return().Once()
	ui.EXPECT().Close(mock.Anything).Return().Once()
	ui.EXPECT().Wait(mock.Anything).Return().Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- newTestWorkflow(t, ui, nil).Collect(ctx, CollectArgs{
			Probes:   probes,
			Codec:    telemetry.JSONCodec{},
			Events:   events,
			Listener: listener,
		})
	}()

	var ws *websocket.Conn

	require.Eventually(t, func() bool {
		ws, _, err = websocket.DefaultDialer.Dial("ws://"+listener.Addr().String(), nil)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	defer ws.Close()

	messages := []string{
		`not json`,
		`{"type":"next","source":{"fileName":"src/a.ts","lineNumber":4,"columnNumber":10},"value":"1"}`,
		`{"type":"subscribe","source":{"fileName":"webpack:///./src/a.ts","lineNumber":4,"columnNumber":9}}`,
		`{"type":"next","source":{"file":"src/a.ts","line":4,"column":9},"value":"42"}`,
	}
	for _, message := range messages {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(message)))
	}

	var got []m.Record

	for range 2 {
		select {
		case record := <-recorded:
			got = append(got, record)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for admitted events")
		}
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("collect did not stop")
	}

	assert.Equal(t, m.KindSubscribe, got[0].Kind)
	assert.Equal(t, point, got[0].Point)
	assert.Equal(t, "webpack:///./src/a.ts", got[0].Source.File)
	assert.Equal(t, m.KindNext, got[1].Kind)
	assert.Equal(t, "42", got[1].Payload)

	sessions, err := adapter.NewSessionStore().Sessions(events)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	log, err := adapter.NewSessionStore().OpenSession(sessions[0])
	require.NoError(t, err)

	defer log.Close()

	assert.Equal(t, uint64(2), log.Len())
}

func TestWorkflow_Collect_AdmitsPointsRegisteredDuringSession(t *testing.T) {
	dir := t.TempDir()
	probes := m.Path(filepath.Join(dir, "probes.yaml"))
	store := adapter.NewProbeStore()
	initial := m.Location{File: "/proj/src/a.ts", Line: 4, Column: 10}
	late := m.Location{File: "/proj/src/b.ts", Line: 7, Column: 3}

	require.NoError(t, store.SaveProbes(probes, []m.Location{initial}))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	recorded := make(chan m.Record, 64)

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayCollectorInfo(mock.Anything, mock.MatchedBy(func(info controller.CollectorInfo) bool {
		return info.Probes == 1 && info.Session == ""
	})).Return().Once()
	ui.EXPECT().DisplayRecord(mock.Anything, mock.Anything).
		Run(func(_ context.Context, record m.Record) {
			select {
			case recorded <- record:
			default:
			}
		}).
		Return()
	ui.EXPECT().DisplaySummary(mock.Anything, mock.Anything).Return().Once()
	ui.EXPECT().Close(mock.Anything).Return().Once()
	ui.EXPECT().Wait(mock.Anything).Return().Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- newTestWorkflow(t, ui, store).Collect(ctx, CollectArgs{
			Probes:   probes,
			Codec:    telemetry.JSONCodec{},
			Listener: listener,
		})
	}()

	var ws *websocket.Conn

	require.Eventually(t, func() bool {
		ws, _, err = websocket.DefaultDialer.Dial("ws://"+listener.Addr().String(), nil)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	defer ws.Close()

	added, err := RegisterPoint(context.Background(), store, probes, late)
	require.NoError(t, err)
	require.True(t, added)

	message := []byte(`{"type":"next","source":{"file":"src/b.ts","line":7,"column":2},"value":"9"}`)

	var got m.Record

	require.Eventually(t, func() bool {
		if err := ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return false
		}

		select {
		case got = <-recorded:
			return true
		case <-time.After(20 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond, "events of a point registered mid-session are admitted")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("collect did not stop")
	}

	assert.Equal(t, late, got.Point)
	assert.Equal(t, m.KindNext, got.Kind)
	assert.Equal(t, "9", got.Payload)
}

func TestWorkflow_View(t *testing.T) {
	dir := m.Path(t.TempDir())
	store := adapter.NewSessionStore()
	point := m.Location{File: "/proj/src/a.ts", Line: 4, Column: 10}
	at := point.Runtime()
	received := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	records := []m.Record{
		m.NewRecord(received, m.Subscribe{At: at}, point),
		m.NewRecord(received, m.Next{At: at, Value: "0"}, point),
		m.NewRecord(received, m.Completed{At: at}, point),
		m.NewRecord(received, m.Unsubscribe{At: at}, point),
	}

	session, err := store.NewSession(dir)
	require.NoError(t, err)
	require.NoError(t, session.AppendBatch(records))
	require.NoError(t, session.Close())

	var (
		mu  sync.Mutex
		got []m.Record
	)

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayRecord(mock.Anything, mock.Anything).
		Run(func(_ context.Context, record m.Record) {
			mu.Lock()
			defer mu.Unlock()

			got = append(got, record)
		}).
		Return().Times(len(records))
	ui.EXPECT().DisplaySummary(mock.Anything, mock.MatchedBy(func(summary controller.Summary) bool {
		return summary.Records == len(records)
	})).Return().Once()
	ui.EXPECT().Close(mock.Anything).Return().Once()
	ui.EXPECT().Wait(mock.Anything).Return().Once()

	require.NoError(t, newTestWorkflow(t, ui, nil).View(context.Background(), ViewArgs{Events: dir}))

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, got, len(records))

	for i := range records {
		assert.Equal(t, records[i].Kind, got[i].Kind)
		assert.Equal(t, records[i].Payload, got[i].Payload)
		assert.True(t, records[i].Received.Equal(got[i].Received))
	}
}

func TestWorkflow_View_NoSessions(t *testing.T) {
	err := newTestWorkflow(t, controllermocks.NewMockUI(t), nil).View(context.Background(), ViewArgs{
		Events: m.Path(t.TempDir()),
	})
	assert.ErrorIs(t, err, ErrNoSessions)
}

type collected struct {
	mu     sync.Mutex
	events []m.Event
}

func (c *collected) handle(_ context.Context, event m.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.events = append(c.events, event)
}

func (c *collected) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.events)
}

func (c *collected) all() []m.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]m.Event(nil), c.events...)
}

func TestWorkflow_Demo(t *testing.T) {
	const wantEvents = 14 // two probes: subscribe, 4 next, completed, unsubscribe

	dir := t.TempDir()
	probes := m.Path(filepath.Join(dir, "probes.yaml"))

	sink := &collected{}
	server := httptest.NewServer(telemetry.NewCollector(telemetry.JSONCodec{}, sink.handle))
	defer server.Close()

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().Start(mock.Anything, mock.Anything).Return(nil).Once()
	ui.EXPECT().DisplayCollectorInfo(mock.Anything, mock.Anything).Return().Once()
	ui.EXPECT().DisplayRecord(mock.Anything, mock.Anything).Return().Maybe()
	ui.EXPECT().DisplaySummary(mock.Anything, mock.Anything).Return().Once()
	ui.EXPECT().Close(mock.Anything).Return().Once()
	ui.EXPECT().Wait(mock.Anything).Return().Once()

	err := newTestWorkflow(t, ui, nil).Demo(context.Background(), DemoArgs{
		URL:               "ws" + strings.TrimPrefix(server.URL, "http"),
		Period:            time.Millisecond,
		Count:             4,
		ReconnectInterval: 10 * time.Millisecond,
		Register:          true,
		Probes:            probes,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return sink.len() == wantEvents }, 5*time.Second, 10*time.Millisecond)

	points, err := adapter.NewProbeStore().LoadProbes(probes)
	require.NoError(t, err)
	require.Len(t, points, 2)

	correlator := NewCorrelator(NewRegistry(points...), StripBundlerPrefix())

	var doubled []string

	for _, event := range sink.all() {
		point, ok := correlator.Match(event.Source())
		require.True(t, ok, "event %v not correlated", event)

		if next, isNext := event.(m.Next); isNext && point == points[1] {
			doubled = append(doubled, next.Value)
		}
	}

	assert.Equal(t, []string{"0", "2", "4", "6"}, doubled)
}

func TestWorkflow_Demo_OperatorsNotAllowed(t *testing.T) {
	wf := NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewLocalGoFileAdapter(),
		adapter.NewProbeStore(),
		adapter.NewSessionStore(),
		controllermocks.NewMockUI(t),
		NewLocator(NewAllowList("Filter")),
	)

	err := wf.Demo(context.Background(), DemoArgs{URL: "ws://127.0.0.1:1"})
	assert.ErrorContains(t, err, "demo operator")
}
