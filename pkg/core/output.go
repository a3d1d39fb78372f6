package core

import (
	"encoding/json"
	"fmt"
)

// Output is the canonical agent output shape. Agents may return maps,
// structs, or plain strings; the evaluator normalizes them once at its
// boundary so metrics only ever deal with this type.
type Output map[string]any

// Field returns the named field, nil if absent.
func (o Output) Field(name string) any {
	if o == nil {
		return nil
	}
	return o[name]
}

// StringField returns the named field as a string, "" if absent or not a string.
func (o Output) StringField(name string) string {
	value, _ := o.Field(name).(string)
	return value
}

// Normalize converts an arbitrary agent return value into an Output.
// Maps pass through, strings become {"response": s}, anything else goes
// through a JSON round trip so struct-shaped outputs keep their field names.
func Normalize(value any) (Output, error) {
	switch v := value.(type) {
	case nil:
		return Output{}, nil
	case Output:
		return v, nil
	case map[string]any:
		return Output(v), nil
	case string:
		return Output{"response": v}, nil
	default:
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("core: cannot normalize agent output of type %T: %w", value, err)
		}
		var out Output
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("core: agent output of type %T is not map-shaped: %w", value, err)
		}
		return out, nil
	}
}
