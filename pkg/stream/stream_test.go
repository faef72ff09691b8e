package stream

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	mu        sync.Mutex
	values    []T
	err       error
	completed bool
	done      chan struct{}
	once      sync.Once
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{done: make(chan struct{})}
}

func (r *recorder[T]) Next(value T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values = append(r.values, value)
}

func (r *recorder[T]) Error(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

func (r *recorder[T]) Complete() {
	r.mu.Lock()
	r.completed = true
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
}

func (r *recorder[T]) snapshot() ([]T, error, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]T(nil), r.values...), r.err, r.completed
}

func TestOf(t *testing.T) {
	rec := newRecorder[int]()
	sub := Of(1, 2, 3).Subscribe(rec)

	values, err, completed := rec.snapshot()
	assert.Equal(t, []int{1, 2, 3}, values)
	assert.NoError(t, err)
	assert.True(t, completed)
	assert.True(t, sub.Closed())
}

func TestOperators(t *testing.T) {
	double := func(i int) int { return i * 2 }
	even := func(i int) bool { return i%2 == 0 }

	tests := []struct {
		name   string
		source Source[int]
		want   []int
	}{
		{"map", Map(double)(Of(1, 2, 3)), []int{2, 4, 6}},
		{"filter", Filter(even)(Of(1, 2, 3, 4)), []int{2, 4}},
		{"take", Take[int](2)(Of(1, 2, 3)), []int{1, 2}},
		{"take zero", Take[int](0)(Of(1, 2, 3)), nil},
		{"take more than available", Take[int](5)(Of(1, 2)), []int{1, 2}},
		{"start with", StartWith(7, 8)(Of(1)), []int{7, 8, 1}},
		{"distinct until changed", DistinctUntilChanged[int]()(Of(1, 1, 2, 2, 1)), []int{1, 2, 1}},
		{"pipe", Pipe[int](Of(1, 2, 3, 4, 5), Filter(even), Map(double)), []int{4, 8}},
		{"merge map", MergeMap(func(i int) Source[int] { return Of(i, i*10) })(Of(1, 2)), []int{1, 10, 2, 20}},
		{"merge map empty inner", MergeMap(func(int) Source[int] { return Empty[int]() })(Of(1, 2)), nil},
		{"switch map", SwitchMap(func(i int) Source[int] { return Of(i, i*10) })(Of(1, 2)), []int{1, 10, 2, 20}},
		{"switch map empty source", SwitchMap(func(i int) Source[int] { return Of(i) })(Empty[int]()), nil},
		{"empty", Empty[int](), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder[int]()
			tt.source.Subscribe(rec)

			values, err, completed := rec.snapshot()
			assert.Equal(t, tt.want, values)
			assert.NoError(t, err)
			assert.True(t, completed)
		})
	}
}

func TestTake_CancelsSynchronousUpstream(t *testing.T) {
	produced := 0
	source := Tap[int](ObserverFuncs[int]{OnNext: func(int) { produced++ }})(Of(1, 2, 3, 4, 5))

	rec := newRecorder[int]()
	Take[int](2)(source).Subscribe(rec)

	values, _, completed := rec.snapshot()
	assert.Equal(t, []int{1, 2}, values)
	assert.True(t, completed)
	assert.Equal(t, 2, produced)
}

func TestThrow(t *testing.T) {
	boom := errors.New("boom")

	rec := newRecorder[string]()
	Map(func(s string) string { return s + "!" })(Throw[string](boom)).Subscribe(rec)

	values, err, completed := rec.snapshot()
	assert.Empty(t, values)
	assert.ErrorIs(t, err, boom)
	assert.False(t, completed)
}

func TestSubscriber_StopsAfterTerminalEvent(t *testing.T) {
	rec := newRecorder[int]()
	sub := NewSubscriber[int](rec)

	torn := 0
	sub.Add(func() { torn++ })

	sub.Next(1)
	sub.Complete()
	sub.Next(2)
	sub.Error(errors.New("late"))
	sub.Unsubscribe()

	values, err, completed := rec.snapshot()
	assert.Equal(t, []int{1}, values)
	assert.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, 1, torn)

	sub.Add(func() { torn++ })
	assert.Equal(t, 2, torn, "teardown added after close runs immediately")
}

func TestLift(t *testing.T) {
	var calls int

	lifted := Of(1, 2).Lift(func(upstream Source[int], downstream *Subscriber[int]) {
		calls++
		upstream.Subscribe(ObserverFuncs[int]{
			OnNext:     func(v int) { downstream.Next(v * 10) },
			OnError:    downstream.Error,
			OnComplete: downstream.Complete,
		})
	})

	var _ Liftable[int] = lifted

	rec := newRecorder[int]()
	lifted.Subscribe(rec)

	values, _, completed := rec.snapshot()
	assert.Equal(t, []int{10, 20}, values)
	assert.True(t, completed)
	assert.Equal(t, 1, calls)
}

func TestFromChannel(t *testing.T) {
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	close(ch)

	rec := newRecorder[string]()
	FromChannel(ch).Subscribe(rec)

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("source did not complete")
	}

	values, _, completed := rec.snapshot()
	assert.Equal(t, []string{"a", "b"}, values)
	assert.True(t, completed)
}

func TestInterval(t *testing.T) {
	rec := newRecorder[int]()
	Take[int](3)(Interval(time.Millisecond)).Subscribe(rec)

	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("interval did not complete")
	}

	values, _, completed := rec.snapshot()
	require.True(t, completed)
	assert.Equal(t, []int{0, 1, 2}, values)
}

func TestSwitchMap_CancelsPreviousInner(t *testing.T) {
	started := make(chan Subscription, 2)
	never := make(chan int)
	outer := make(chan int)

	sub := SwitchMap(func(int) Source[int] {
		return New(func(dest *Subscriber[int]) func() {
			started <- dest
			FromChannel[int](never).Subscribe(dest)

			return nil
		})
	})(FromChannel[int](outer)).Subscribe(newRecorder[int]())

	outer <- 1
	first := <-started

	outer <- 2
	second := <-started

	assert.True(t, first.Closed(), "a new value cancels the previous inner subscription")
	assert.False(t, second.Closed())

	sub.Unsubscribe()
	assert.True(t, second.Closed())
}

func TestMergeMap_UnsubscribeCancelsEveryInner(t *testing.T) {
	var inners []Subscription

	sub := MergeMap(func(int) Source[int] {
		return New(func(dest *Subscriber[int]) func() {
			inners = append(inners, dest)
			return nil
		})
	})(Of(1, 2, 3)).Subscribe(newRecorder[int]())

	require.Len(t, inners, 3)

	for _, inner := range inners {
		assert.False(t, inner.Closed())
	}

	sub.Unsubscribe()

	for _, inner := range inners {
		assert.True(t, inner.Closed())
	}
}

func TestMergeMap_CompletesAfterLastInner(t *testing.T) {
	ch := make(chan int)

	rec := newRecorder[int]()
	MergeMap(func(int) Source[int] { return FromChannel[int](ch) })(Of(1)).Subscribe(rec)

	_, _, completed := rec.snapshot()
	assert.False(t, completed, "outer completion waits for the inner source")

	ch <- 5
	close(ch)

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("merge map did not complete")
	}

	values, _, completed := rec.snapshot()
	assert.Equal(t, []int{5}, values)
	assert.True(t, completed)
}
