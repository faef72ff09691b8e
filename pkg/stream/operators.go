package stream

import "sync"

// Map applies project to every value.
func Map[T, R any](project func(T) R) Operator[T, R] {
	return func(source Source[T]) Source[R] {
		return New(func(dest *Subscriber[R]) func() {
			subscribeInner(source, dest, func(value T) {
				dest.Next(project(value))
			})

			return nil
		})
	}
}

// Filter forwards values for which predicate returns true.
func Filter[T any](predicate func(T) bool) Operator[T, T] {
	return func(source Source[T]) Source[T] {
		return New(func(dest *Subscriber[T]) func() {
			subscribeInner(source, dest, func(value T) {
				if predicate(value) {
					dest.Next(value)
				}
			})

			return nil
		})
	}
}

// Take forwards the first count values, then completes and cancels the
// upstream subscription.
func Take[T any](count int) Operator[T, T] {
	return func(source Source[T]) Source[T] {
		return New(func(dest *Subscriber[T]) func() {
			if count <= 0 {
				dest.Complete()
				return nil
			}

			seen := 0

			subscribeInner(source, dest, func(value T) {
				seen++
				dest.Next(value)

				if seen == count {
					dest.Complete()
				}
			})

			return nil
		})
	}
}

// Tap calls observer for every event and forwards the event unchanged.
func Tap[T any](observer Observer[T]) Operator[T, T] {
	return func(source Source[T]) Source[T] {
		return New(func(dest *Subscriber[T]) func() {
			upstream := NewSubscriber[T](ObserverFuncs[T]{
				OnNext: func(value T) {
					observer.Next(value)
					dest.Next(value)
				},
				OnError: func(err error) {
					observer.Error(err)
					dest.Error(err)
				},
				OnComplete: func() {
					observer.Complete()
					dest.Complete()
				},
			})
			dest.Add(upstream.Unsubscribe)
			source.Subscribe(upstream)

			return nil
		})
	}
}

// StartWith emits values before the upstream ones.
func StartWith[T any](values ...T) Operator[T, T] {
	return func(source Source[T]) Source[T] {
		return New(func(dest *Subscriber[T]) func() {
			for _, value := range values {
				if dest.Closed() {
					return nil
				}

				dest.Next(value)
			}

			subscribeInner(source, dest, dest.Next)

			return nil
		})
	}
}

// DistinctUntilChanged drops values equal to the previous one.
func DistinctUntilChanged[T comparable]() Operator[T, T] {
	return func(source Source[T]) Source[T] {
		return New(func(dest *Subscriber[T]) func() {
			var (
				last T
				seen bool
			)

			subscribeInner(source, dest, func(value T) {
				if seen && value == last {
					return
				}

				last, seen = value, true
				dest.Next(value)
			})

			return nil
		})
	}
}

// MergeMap subscribes to the source returned by project for every value and
// merges their values. It completes once the source and every inner source
// have completed. Cancelling the result cancels all inner subscriptions.
func MergeMap[T, R any](project func(T) Source[R]) Operator[T, R] {
	return func(source Source[T]) Source[R] {
		return New(func(dest *Subscriber[R]) func() {
			out := &serialized[R]{dest: dest}

			var mu sync.Mutex

			active := 1

			release := func() {
				mu.Lock()
				active--
				last := active == 0
				mu.Unlock()

				if last {
					out.Complete()
				}
			}

			outer := NewSubscriber[T](ObserverFuncs[T]{
				OnNext: func(value T) {
					mu.Lock()
					active++
					mu.Unlock()

					inner := NewSubscriber[R](ObserverFuncs[R]{
						OnNext:     out.Next,
						OnError:    out.Error,
						OnComplete: release,
					})
					dest.Add(inner.Unsubscribe)
					project(value).Subscribe(inner)
				},
				OnError:    out.Error,
				OnComplete: release,
			})
			dest.Add(outer.Unsubscribe)
			source.Subscribe(outer)

			return nil
		})
	}
}

// SwitchMap subscribes to the source returned by project for the latest
// value only. A new value cancels the previous inner subscription before
// the next one starts. It completes once the source and the current inner
// source have completed.
func SwitchMap[T, R any](project func(T) Source[R]) Operator[T, R] {
	return func(source Source[T]) Source[R] {
		return New(func(dest *Subscriber[R]) func() {
			out := &serialized[R]{dest: dest}

			var (
				mu        sync.Mutex
				current   *Subscriber[R]
				outerDone bool
			)

			isCurrent := func(inner *Subscriber[R]) bool {
				mu.Lock()
				defer mu.Unlock()

				return current == inner
			}

			outer := NewSubscriber[T](ObserverFuncs[T]{
				OnNext: func(value T) {
					var inner *Subscriber[R]

					inner = NewSubscriber[R](ObserverFuncs[R]{
						OnNext: func(v R) {
							if isCurrent(inner) {
								out.Next(v)
							}
						},
						OnError: func(err error) {
							if isCurrent(inner) {
								out.Error(err)
							}
						},
						OnComplete: func() {
							mu.Lock()
							if current != inner {
								mu.Unlock()
								return
							}

							current = nil
							finish := outerDone
							mu.Unlock()

							if finish {
								out.Complete()
							}
						},
					})

					mu.Lock()
					previous := current
					current = inner
					mu.Unlock()

					if previous != nil {
						previous.Unsubscribe()
					}

					dest.Add(inner.Unsubscribe)
					project(value).Subscribe(inner)
				},
				OnError: out.Error,
				OnComplete: func() {
					mu.Lock()
					outerDone = true
					finish := current == nil
					mu.Unlock()

					if finish {
						out.Complete()
					}
				},
			})
			dest.Add(outer.Unsubscribe)
			source.Subscribe(outer)

			return nil
		})
	}
}

// serialized delivers events from concurrent inner subscriptions to dest
// one at a time.
type serialized[R any] struct {
	mu   sync.Mutex
	dest *Subscriber[R]
}

func (s *serialized[R]) Next(value R) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dest.Next(value)
}

func (s *serialized[R]) Error(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dest.Error(err)
}

func (s *serialized[R]) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dest.Complete()
}
