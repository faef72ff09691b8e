package stream

import (
	"sync"
	"time"
)

// Of emits values in order, then completes.
func Of[T any](values ...T) *Observable[T] {
	return New(func(subscriber *Subscriber[T]) func() {
		for _, value := range values {
			if subscriber.Closed() {
				return nil
			}

			subscriber.Next(value)
		}

		subscriber.Complete()

		return nil
	})
}

// Empty completes immediately.
func Empty[T any]() *Observable[T] {
	return New(func(subscriber *Subscriber[T]) func() {
		subscriber.Complete()
		return nil
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) *Observable[T] {
	return New(func(subscriber *Subscriber[T]) func() {
		subscriber.Error(err)
		return nil
	})
}

// FromChannel emits everything received from ch and completes when ch is
// closed. Unsubscribing stops the reader goroutine, not the sender.
func FromChannel[T any](ch <-chan T) *Observable[T] {
	return New(func(subscriber *Subscriber[T]) func() {
		done := make(chan struct{})

		go func() {
			for {
				select {
				case <-done:
					return
				case value, ok := <-ch:
					if !ok {
						subscriber.Complete()
						return
					}

					subscriber.Next(value)
				}
			}
		}()

		return closer(done)
	})
}

// Interval emits 0, 1, 2, ... once per period until unsubscribed.
func Interval(period time.Duration) *Observable[int] {
	return New(func(subscriber *Subscriber[int]) func() {
		done := make(chan struct{})
		ticker := time.NewTicker(period)

		go func() {
			defer ticker.Stop()

			for i := 0; ; i++ {
				select {
				case <-done:
					return
				case <-ticker.C:
					subscriber.Next(i)
				}
			}
		}()

		return closer(done)
	})
}

func closer(done chan struct{}) func() {
	var once sync.Once

	return func() {
		once.Do(func() { close(done) })
	}
}
