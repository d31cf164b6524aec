package advisory

import (
	"encoding/json"
	"fmt"
)

// EncodeJSON renders a signal with its type tag inlined alongside the
// signal's own fields, e.g. {"type":"FREE_DAY","freeCount":2}.
func EncodeJSON(sig Signal) (json.RawMessage, error) {
	raw, err := json.Marshal(sig)
	if err != nil {
		return nil, fmt.Errorf("marshal signal: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("reshape signal: %w", err)
	}
	fields["type"] = sig.SignalType()

	return json.Marshal(fields)
}

// EncodeAllJSON renders a signal list, preserving order.
func EncodeAllJSON(signals []Signal) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(signals))
	for _, sig := range signals {
		raw, err := EncodeJSON(sig)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}
