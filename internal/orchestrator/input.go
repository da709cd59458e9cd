package orchestrator

import (
	"encoding/json"
	"fmt"
	"io"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/internal/errors"
)

// traceInput mirrors one entry of the input JSON schema's "traces" array.
// Unknown per-trace fields are captured in Extra and left untouched by the
// core (spec §6: "unknown per-trace fields are preserved opaquely").
type traceInput struct {
	Name   string          `json:"name"`
	Values []float64       `json:"values"`
	Extra  json.RawMessage `json:"-"`
}

func (t *traceInput) UnmarshalJSON(data []byte) error {
	type alias struct {
		Name   string    `json:"name"`
		Values []float64 `json:"values"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	t.Name = a.Name
	t.Values = a.Values
	t.Extra = append(json.RawMessage(nil), data...)
	return nil
}

// inputDocument mirrors the top-level input JSON schema. Unknown top-level
// fields are ignored by json.Unmarshal's default behavior.
type inputDocument struct {
	Traces []traceInput `json:"traces"`
}

// parseDocument parses one baseline/target JSON document into a
// name -> sample mapping. A trace with an empty name, or a name repeated
// within the document, is a schema error (C7 step 1-2).
func parseDocument(r io.Reader, label string) (map[string]domaingate.Sample, error) {
	var doc inputDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.SchemaError(fmt.Sprintf("%s: invalid JSON", label)), err.Error())
	}

	samples := make(map[string]domaingate.Sample, len(doc.Traces))
	for _, tr := range doc.Traces {
		if tr.Name == "" {
			return nil, errors.SchemaError(fmt.Sprintf("%s: trace with empty name", label))
		}
		if _, dup := samples[tr.Name]; dup {
			return nil, errors.SchemaError(fmt.Sprintf("%s: duplicate trace name %q", label, tr.Name))
		}
		sample := domaingate.Sample(tr.Values)
		if err := sample.Validate(); err != nil {
			return nil, errors.Wrap(errors.SchemaError(fmt.Sprintf("%s: trace %q", label, tr.Name)), err.Error())
		}
		samples[tr.Name] = sample
	}
	return samples, nil
}
