package probe

import (
	"encoding/json"
	"log/slog"
)

// SerializationSentinel replaces values that cannot be serialized.
const SerializationSentinel = "<unserializable>"

// Serialize renders value as JSON text. Errors render as their message.
// It never panics and never fails.
func Serialize(value any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("serialize panicked", "type", typeName(value), "panic", r)
			text = SerializationSentinel
		}
	}()

	if err, ok := value.(error); ok {
		value = err.Error()
	}

	data, err := json.Marshal(value)
	if err != nil {
		slog.Debug("serialize failed", "type", typeName(value), "error", err)
		return SerializationSentinel
	}

	return string(data)
}
