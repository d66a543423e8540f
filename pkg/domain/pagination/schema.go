package pagination

import (
	"bytes"
	"encoding/json"
	"fmt"

	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
)

// Kind is the wire type of a method parameter.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStrings
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindStrings:
		return "strings"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Param describes one keyword parameter of a paginable method.
//
// Methods declare their parameters explicitly at registration.
// The schema is the serialization contract for parameters persisted
// in pagination cache records, so it never contains offset/limit.
type Param struct {
	Name     string
	Kind     Kind
	Required bool

	// value filled in when the parameter is omitted. nil = no default.
	Default any
}

type Schema []Param

func (s Schema) param(name string) (Param, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Marshal validates kwargs against the schema and serializes them
// for persistence in a pagination cache record.
//
// "offset" and "limit" keys are dropped: they belong to the pagination
// engine, not to the stored parameter set. Unknown keys and missing
// required parameters are errors. nil values are not stored.
// Omitted optional parameters with a declared default are stored
// with the default, so every record carries the effective parameter set.
func (s Schema) Marshal(kwargs map[string]any) (json.RawMessage, error) {
	out := map[string]any{}
	for name, value := range kwargs {
		if name == "offset" || name == "limit" {
			continue
		}
		p, ok := s.param(name)
		if !ok {
			return nil, kerr.InvalidArgument{
				Reason: fmt.Sprintf("unknown parameter: %s", name),
			}
		}
		if value == nil {
			continue
		}
		coerced, err := p.coerce(value)
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}

	for _, p := range s {
		if _, given := out[p.Name]; given {
			continue
		}
		if p.Required {
			return nil, kerr.InvalidArgument{
				Reason: fmt.Sprintf("required parameter is missing: %s", p.Name),
			}
		}
		if p.Default != nil {
			out[p.Name] = p.Default
		}
	}

	return json.Marshal(out)
}

// Unmarshal restores a parameter set stored by Marshal.
//
// JSON numbers are mapped back to int or float64 as the schema declares,
// so the fetch method receives the same types it was first called with.
func (s Schema) Unmarshal(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	stored := map[string]any{}
	if err := dec.Decode(&stored); err != nil {
		return nil, err
	}

	out := map[string]any{}
	for name, value := range stored {
		p, ok := s.param(name)
		if !ok {
			return nil, kerr.InvalidArgument{
				Reason: fmt.Sprintf("stored parameter does not fit the schema: %s", name),
			}
		}
		coerced, err := p.coerce(value)
		if err != nil {
			return nil, err
		}
		out[name] = coerced
	}
	return out, nil
}

func (p Param) coerce(value any) (any, error) {
	switch p.Kind {
	case KindString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case KindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case json.Number:
			i, err := v.Int64()
			if err == nil {
				return int(i), nil
			}
		case float64:
			if v == float64(int(v)) {
				return int(v), nil
			}
		}
	case KindFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case json.Number:
			f, err := v.Float64()
			if err == nil {
				return f, nil
			}
		}
	case KindBool:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case KindStrings:
		switch v := value.(type) {
		case []string:
			return v, nil
		case []any:
			out := make([]string, len(v))
			for nth, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, kerr.InvalidArgument{
						Reason: fmt.Sprintf("parameter %s should be %s", p.Name, p.Kind),
					}
				}
				out[nth] = s
			}
			return out, nil
		}
	}
	return nil, kerr.InvalidArgument{
		Reason: fmt.Sprintf("parameter %s should be %s", p.Name, p.Kind),
	}
}
