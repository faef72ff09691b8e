package telemetry

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"

	m "streamlens.dev/pkg/streamlens/internal/model"
)

// Codec names accepted by CodecByName.
const (
	CodecJSON    = "json"
	CodecCBOR    = "cbor"
	CodecMsgpack = "msgpack"
)

// Codec turns one event into one self-contained message and back.
type Codec interface {
	Name() string
	// Binary reports whether messages must travel as binary frames.
	Binary() bool
	Encode(event m.Event) ([]byte, error)
	Decode(data []byte) (m.Event, error)
}

// CodecByName returns the codec registered under name.
func CodecByName(name string) (Codec, error) {
	switch name {
	case CodecJSON, "":
		return JSONCodec{}, nil
	case CodecCBOR:
		return CBORCodec{}, nil
	case CodecMsgpack:
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want %s, %s or %s)", name, CodecJSON, CodecCBOR, CodecMsgpack)
	}
}

// JSONCodec encodes events as JSON text.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return CodecJSON }

// Binary implements Codec.
func (JSONCodec) Binary() bool { return false }

// Encode implements Codec.
func (JSONCodec) Encode(event m.Event) ([]byte, error) {
	return json.Marshal(toWire(event))
}

// Decode implements Codec.
func (JSONCodec) Decode(data []byte) (m.Event, error) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return fromWire(msg)
}

var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error

	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("telemetry: CBOR encoder initialization failed: " + err.Error())
	}

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("telemetry: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORCodec encodes events with deterministic CBOR.
type CBORCodec struct{}

// Name implements Codec.
func (CBORCodec) Name() string { return CodecCBOR }

// Binary implements Codec.
func (CBORCodec) Binary() bool { return true }

// Encode implements Codec.
func (CBORCodec) Encode(event m.Event) ([]byte, error) {
	return cborEncMode.Marshal(toWire(event))
}

// Decode implements Codec.
func (CBORCodec) Decode(data []byte) (m.Event, error) {
	var msg inboundMessage
	if err := cborDecMode.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return fromWire(msg)
}

// MsgpackCodec encodes events with MessagePack.
type MsgpackCodec struct{}

// Name implements Codec.
func (MsgpackCodec) Name() string { return CodecMsgpack }

// Binary implements Codec.
func (MsgpackCodec) Binary() bool { return true }

// Encode implements Codec.
func (MsgpackCodec) Encode(event m.Event) ([]byte, error) {
	return msgpack.Marshal(toWire(event))
}

// Decode implements Codec.
func (MsgpackCodec) Decode(data []byte) (m.Event, error) {
	var msg inboundMessage
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return fromWire(msg)
}
