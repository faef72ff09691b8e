package model

import "time"

// Record is an admitted event as stored in a session event log.
type Record struct {
	Received time.Time `cbor:"received"`
	Kind     Kind      `cbor:"kind"`
	Source   Location  `cbor:"source"` // runtime location reported by the probe
	Point    Location  `cbor:"point"`  // registered probe point it matched
	Payload  string    `cbor:"payload,omitempty"`
}

// NewRecord builds a Record for e admitted against point.
func NewRecord(received time.Time, e Event, point Location) Record {
	return Record{
		Received: received,
		Kind:     e.Kind(),
		Source:   e.Source(),
		Point:    point,
		Payload:  Payload(e),
	}
}

// Event rebuilds the lifecycle event stored in r.
func (r Record) Event() Event {
	switch r.Kind {
	case KindSubscribe:
		return Subscribe{At: r.Source}
	case KindNext:
		return Next{At: r.Source, Value: r.Payload}
	case KindError:
		return Error{At: r.Source, Message: r.Payload}
	case KindCompleted:
		return Completed{At: r.Source}
	case KindUnsubscribe:
		return Unsubscribe{At: r.Source}
	}

	return nil
}
