package publication

import (
	"encoding/json"
	"fmt"
)

// Reference ties a publication to its context and instance.
type Reference struct {
	DOI      string
	Context  Context
	Instance Instance
}

// typed is the JSON envelope used for Context and Instance values.
type typed struct {
	Type string `json:"type"`
}

type referenceJSON struct {
	DOI      string          `json:"doi,omitempty"`
	Context  json.RawMessage `json:"publication_context,omitempty"`
	Instance json.RawMessage `json:"publication_instance,omitempty"`
}

// MarshalJSON encodes context and instance with a "type" discriminator.
func (r Reference) MarshalJSON() ([]byte, error) {
	out := referenceJSON{DOI: r.DOI}
	var err error
	if r.Context != nil {
		if out.Context, err = marshalTyped(string(r.Context.ContextType()), r.Context); err != nil {
			return nil, fmt.Errorf("encoding publication context: %w", err)
		}
	}
	if r.Instance != nil {
		if out.Instance, err = marshalTyped(string(r.Instance.Kind()), r.Instance); err != nil {
			return nil, fmt.Errorf("encoding publication instance: %w", err)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the discriminated context and instance.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var in referenceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Reference{DOI: in.DOI}

	if len(in.Context) > 0 && string(in.Context) != "null" {
		var t typed
		if err := json.Unmarshal(in.Context, &t); err != nil {
			return fmt.Errorf("decoding publication context: %w", err)
		}
		ctx, ok := NewContext(ContextType(t.Type))
		if !ok {
			return fmt.Errorf("unknown publication context type %q", t.Type)
		}
		if err := json.Unmarshal(in.Context, ctx); err != nil {
			return fmt.Errorf("decoding %s context: %w", t.Type, err)
		}
		r.Context = ctx
	}

	if len(in.Instance) > 0 && string(in.Instance) != "null" {
		var t typed
		if err := json.Unmarshal(in.Instance, &t); err != nil {
			return fmt.Errorf("decoding publication instance: %w", err)
		}
		inst, ok := NewInstance(Kind(t.Type))
		if !ok {
			return fmt.Errorf("unknown publication instance type %q", t.Type)
		}
		if err := json.Unmarshal(in.Instance, inst); err != nil {
			return fmt.Errorf("decoding %s instance: %w", t.Type, err)
		}
		r.Instance = inst
	}
	return nil
}

// marshalTyped encodes v as a JSON object and adds the "type" field.
func marshalTyped(typeName string, v any) (json.RawMessage, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	name, _ := json.Marshal(typeName)
	fields["type"] = name
	return json.Marshal(fields)
}
