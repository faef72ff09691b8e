package model

// Kind is the wire tag of a lifecycle event.
type Kind string

const (
	// KindSubscribe marks the start of a subscription.
	KindSubscribe Kind = "subscribe"
	// KindNext carries one upstream value.
	KindNext Kind = "next"
	// KindError carries the upstream error.
	KindError Kind = "error"
	// KindCompleted marks normal upstream completion.
	KindCompleted Kind = "completed"
	// KindUnsubscribe marks teardown. It is always the last event of a subscription.
	KindUnsubscribe Kind = "unsubscribe"
)

// Kinds lists every event kind in lifecycle order.
var Kinds = []Kind{KindSubscribe, KindNext, KindError, KindCompleted, KindUnsubscribe}

// Event is a lifecycle event emitted by a probed operator. The set of
// implementations is closed: Subscribe, Next, Error, Completed and
// Unsubscribe.
type Event interface {
	Kind() Kind
	Source() Location
	sealed()
}

// Subscribe is emitted once, before any value reaches the consumer.
type Subscribe struct {
	At Location
}

// Next is emitted for every upstream value.
type Next struct {
	At    Location
	Value string // serialized value
}

// Error is emitted when the upstream fails.
type Error struct {
	At      Location
	Message string // serialized error
}

// Completed is emitted when the upstream completes normally.
type Completed struct {
	At Location
}

// Unsubscribe is emitted exactly once per subscription, on every teardown path.
type Unsubscribe struct {
	At Location
}

func (Subscribe) Kind() Kind   { return KindSubscribe }
func (Next) Kind() Kind        { return KindNext }
func (Error) Kind() Kind       { return KindError }
func (Completed) Kind() Kind   { return KindCompleted }
func (Unsubscribe) Kind() Kind { return KindUnsubscribe }

func (e Subscribe) Source() Location   { return e.At }
func (e Next) Source() Location        { return e.At }
func (e Error) Source() Location       { return e.At }
func (e Completed) Source() Location   { return e.At }
func (e Unsubscribe) Source() Location { return e.At }

func (Subscribe) sealed()   {}
func (Next) sealed()        {}
func (Error) sealed()       {}
func (Completed) sealed()   {}
func (Unsubscribe) sealed() {}

// Cases holds one handler per event variant. A nil handler yields the zero
// value of R for that variant.
type Cases[R any] struct {
	Subscribe   func(Subscribe) R
	Next        func(Next) R
	Error       func(Error) R
	Completed   func(Completed) R
	Unsubscribe func(Unsubscribe) R
}

// Match dispatches e to the handler for its variant.
func Match[R any](e Event, c Cases[R]) R {
	var zero R

	switch ev := e.(type) {
	case Subscribe:
		if c.Subscribe != nil {
			return c.Subscribe(ev)
		}
	case Next:
		if c.Next != nil {
			return c.Next(ev)
		}
	case Error:
		if c.Error != nil {
			return c.Error(ev)
		}
	case Completed:
		if c.Completed != nil {
			return c.Completed(ev)
		}
	case Unsubscribe:
		if c.Unsubscribe != nil {
			return c.Unsubscribe(ev)
		}
	}

	return zero
}

// WithSource returns a copy of e tagged with loc.
func WithSource(e Event, loc Location) Event {
	return Match(e, Cases[Event]{
		Subscribe:   func(Subscribe) Event { return Subscribe{At: loc} },
		Next:        func(ev Next) Event { return Next{At: loc, Value: ev.Value} },
		Error:       func(ev Error) Event { return Error{At: loc, Message: ev.Message} },
		Completed:   func(Completed) Event { return Completed{At: loc} },
		Unsubscribe: func(Unsubscribe) Event { return Unsubscribe{At: loc} },
	})
}

// Payload returns the serialized value or error carried by e, if any.
func Payload(e Event) string {
	return Match(e, Cases[string]{
		Next:  func(ev Next) string { return ev.Value },
		Error: func(ev Error) string { return ev.Message },
	})
}
