package telemetry

import (
	"errors"
	"fmt"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// ErrMalformedMessage is returned when a wire message cannot be decoded
// into an event.
var ErrMalformedMessage = errors.New("malformed telemetry message")

// wireSource is the outbound source shape. It always uses the long field
// names.
type wireSource struct {
	FileName     string `json:"fileName" cbor:"fileName" msgpack:"fileName"`
	LineNumber   int    `json:"lineNumber" cbor:"lineNumber" msgpack:"lineNumber"`
	ColumnNumber int    `json:"columnNumber" cbor:"columnNumber" msgpack:"columnNumber"`
}

// wireMessage is one event on the wire. Value is present only on next and
// Error only on error.
type wireMessage struct {
	Type   string     `json:"type" cbor:"type" msgpack:"type"`
	Source wireSource `json:"source" cbor:"source" msgpack:"source"`
	Value  *string    `json:"value,omitempty" cbor:"value,omitempty" msgpack:"value,omitempty"`
	Error  *string    `json:"error,omitempty" cbor:"error,omitempty" msgpack:"error,omitempty"`
}

// inboundSource accepts both the long and the short field names.
type inboundSource struct {
	FileName     *string `json:"fileName" cbor:"fileName" msgpack:"fileName"`
	File         *string `json:"file" cbor:"file" msgpack:"file"`
	LineNumber   *int    `json:"lineNumber" cbor:"lineNumber" msgpack:"lineNumber"`
	Line         *int    `json:"line" cbor:"line" msgpack:"line"`
	ColumnNumber *int    `json:"columnNumber" cbor:"columnNumber" msgpack:"columnNumber"`
	Column       *int    `json:"column" cbor:"column" msgpack:"column"`
}

type inboundMessage struct {
	Type   string         `json:"type" cbor:"type" msgpack:"type"`
	Source *inboundSource `json:"source" cbor:"source" msgpack:"source"`
	Value  *string        `json:"value" cbor:"value" msgpack:"value"`
	Error  *string        `json:"error" cbor:"error" msgpack:"error"`
}

func toWire(event m.Event) wireMessage {
	at := event.Source()
	msg := wireMessage{
		Type: string(event.Kind()),
		Source: wireSource{
			FileName:     at.File,
			LineNumber:   at.Line,
			ColumnNumber: at.Column,
		},
	}

	m.Match(event, m.Cases[struct{}]{
		Next: func(e m.Next) struct{} {
			msg.Value = &e.Value
			return struct{}{}
		},
		Error: func(e m.Error) struct{} {
			msg.Error = &e.Message
			return struct{}{}
		},
	})

	return msg
}

func fromWire(msg inboundMessage) (m.Event, error) {
	if msg.Source == nil {
		return nil, fmt.Errorf("%w: missing source", ErrMalformedMessage)
	}

	at, err := msg.Source.location()
	if err != nil {
		return nil, err
	}

	kind := m.Kind(msg.Type)

	if msg.Value != nil && kind != m.KindNext {
		return nil, fmt.Errorf("%w: value on %q", ErrMalformedMessage, msg.Type)
	}

	if msg.Error != nil && kind != m.KindError {
		return nil, fmt.Errorf("%w: error on %q", ErrMalformedMessage, msg.Type)
	}

	switch kind {
	case m.KindSubscribe:
		return m.Subscribe{At: at}, nil
	case m.KindNext:
		if msg.Value == nil {
			return nil, fmt.Errorf("%w: next without value", ErrMalformedMessage)
		}

		return m.Next{At: at, Value: *msg.Value}, nil
	case m.KindError:
		if msg.Error == nil {
			return nil, fmt.Errorf("%w: error without message", ErrMalformedMessage)
		}

		return m.Error{At: at, Message: *msg.Error}, nil
	case m.KindCompleted:
		return m.Completed{At: at}, nil
	case m.KindUnsubscribe:
		return m.Unsubscribe{At: at}, nil
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, msg.Type)
	}
}

func (s *inboundSource) location() (m.Location, error) {
	file, err := either("fileName", s.FileName, "file", s.File)
	if err != nil {
		return m.Location{}, err
	}

	line, err := either("lineNumber", s.LineNumber, "line", s.Line)
	if err != nil {
		return m.Location{}, err
	}

	column, err := either("columnNumber", s.ColumnNumber, "column", s.Column)
	if err != nil {
		return m.Location{}, err
	}

	at := m.Location{File: *file, Line: *line, Column: *column}
	if !at.Valid() {
		return m.Location{}, fmt.Errorf("%w: invalid source %s", ErrMalformedMessage, at)
	}

	return at, nil
}

// either returns whichever of the two aliased fields is set.
func either[T any](name string, value *T, alias string, aliasValue *T) (*T, error) {
	switch {
	case value != nil && aliasValue != nil:
		return nil, fmt.Errorf("%w: both %s and %s set", ErrMalformedMessage, name, alias)
	case value != nil:
		return value, nil
	case aliasValue != nil:
		return aliasValue, nil
	default:
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedMessage, name)
	}
}
