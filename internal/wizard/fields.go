// AngelaMos | 2026
// fields.go

package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Fields holds the values entered so far. Absent and empty mean the same
// thing.
type Fields map[string]string

func (f Fields) Get(name string) string {
	return f[name]
}

func (f Fields) Has(name string) bool {
	return strings.TrimSpace(f[name]) != ""
}

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Patch is a partial update. A nil value clears the field. Numbers and
// booleans are accepted and stored in their textual form.
type Patch map[string]*string

func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Patch, len(raw))
	for name, value := range raw {
		v, err := decodeValue(value)
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = v
	}

	*p = out
	return nil
}

func decodeValue(raw json.RawMessage) (*string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return nil, err
		}
		s := strconv.FormatBool(b)
		return &s, nil
	default:
		var n json.Number
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("value must be a string, number or null")
		}
		s := n.String()
		return &s, nil
	}
}
