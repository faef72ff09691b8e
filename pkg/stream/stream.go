// Package stream is a small push-based reactive stream library.
//
// Values are delivered synchronously on the producer's goroutine. Operators
// are plain functions from one Source to another, and every Observable can be
// lifted so instrumentation can sit between a source and its subscribers.
package stream

import "sync"

// Observer receives the values and the terminal event of a Source.
type Observer[T any] interface {
	Next(value T)
	Error(err error)
	Complete()
}

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// Source produces values for observers.
type Source[T any] interface {
	Subscribe(observer Observer[T]) Subscription
}

// Hook connects a downstream subscriber to an upstream source.
// Lifted observables call it once per subscription.
type Hook[T any] func(upstream Source[T], downstream *Subscriber[T])

// Liftable is a Source exposing a composition point for hooks.
type Liftable[T any] interface {
	Source[T]
	Lift(hook Hook[T]) *Observable[T]
}

// Operator transforms one source into another.
type Operator[T, R any] func(source Source[T]) Source[R]

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs[T any] struct {
	OnNext     func(value T)
	OnError    func(err error)
	OnComplete func()
}

// Next implements Observer.
func (f ObserverFuncs[T]) Next(value T) {
	if f.OnNext != nil {
		f.OnNext(value)
	}
}

// Error implements Observer.
func (f ObserverFuncs[T]) Error(err error) {
	if f.OnError != nil {
		f.OnError(err)
	}
}

// Complete implements Observer.
func (f ObserverFuncs[T]) Complete() {
	if f.OnComplete != nil {
		f.OnComplete()
	}
}

// Subscriber guards an Observer. It forwards nothing after the first
// terminal event and runs its teardowns exactly once.
type Subscriber[T any] struct {
	mu        sync.Mutex
	dest      Observer[T]
	stopped   bool
	closed    bool
	teardowns []func()
}

// NewSubscriber wraps dest.
func NewSubscriber[T any](dest Observer[T]) *Subscriber[T] {
	return &Subscriber[T]{dest: dest}
}

func (s *Subscriber[T]) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopped
}

// stop marks the subscriber stopped and reports whether it was running.
func (s *Subscriber[T]) stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return false
	}

	s.stopped = true

	return true
}

// Next forwards value unless the subscriber is stopped.
func (s *Subscriber[T]) Next(value T) {
	if s.isStopped() {
		return
	}

	s.dest.Next(value)
}

// Error forwards err, then tears the subscriber down.
func (s *Subscriber[T]) Error(err error) {
	if !s.stop() {
		return
	}

	s.dest.Error(err)
	s.Unsubscribe()
}

// Complete forwards completion, then tears the subscriber down.
func (s *Subscriber[T]) Complete() {
	if !s.stop() {
		return
	}

	s.dest.Complete()
	s.Unsubscribe()
}

// Add registers a teardown. It runs immediately when the subscriber is
// already closed.
func (s *Subscriber[T]) Add(teardown func()) {
	if teardown == nil {
		return
	}

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		teardown()

		return
	}

	s.teardowns = append(s.teardowns, teardown)
	s.mu.Unlock()
}

// Unsubscribe stops the subscriber and runs its teardowns in the order
// they were added. Later calls do nothing.
func (s *Subscriber[T]) Unsubscribe() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	s.closed = true
	s.stopped = true
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	for _, teardown := range teardowns {
		teardown()
	}
}

// Closed reports whether Unsubscribe has run.
func (s *Subscriber[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Observable is the Liftable Source built by New.
type Observable[T any] struct {
	produce func(subscriber *Subscriber[T]) func()
}

// New creates an Observable. produce is called once per subscription and
// may return a teardown.
func New[T any](produce func(subscriber *Subscriber[T]) func()) *Observable[T] {
	return &Observable[T]{produce: produce}
}

// Subscribe starts a subscription. A *Subscriber passed as observer is used
// as is, so cancelling it stops a synchronous producer.
func (o *Observable[T]) Subscribe(observer Observer[T]) Subscription {
	subscriber, ok := observer.(*Subscriber[T])
	if !ok {
		subscriber = NewSubscriber(observer)
	}

	subscriber.Add(o.produce(subscriber))

	return subscriber
}

// Lift returns an Observable whose subscriptions go through hook.
func (o *Observable[T]) Lift(hook Hook[T]) *Observable[T] {
	return New(func(subscriber *Subscriber[T]) func() {
		hook(o, subscriber)
		return nil
	})
}

// Pipe applies ops in order.
func Pipe[T any](source Source[T], ops ...Operator[T, T]) Source[T] {
	for _, op := range ops {
		source = op(source)
	}

	return source
}

// subscribeInner subscribes to source on behalf of dest. Values go through
// next, terminal events are forwarded, and cancelling dest cancels the
// upstream subscription.
func subscribeInner[T, R any](source Source[T], dest *Subscriber[R], next func(T)) {
	upstream := NewSubscriber[T](ObserverFuncs[T]{
		OnNext:     next,
		OnError:    dest.Error,
		OnComplete: dest.Complete,
	})
	dest.Add(upstream.Unsubscribe)
	source.Subscribe(upstream)
}
