package analysis

import (
	"fmt"
)

// Report lists every schema violation found in a payload. Violations are
// accumulated rather than short-circuited because operators diff the full set
// across time to spot prompt-template drift.
type Report struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missing_fields,omitempty"`
	TypeErrors    []string `json:"type_errors,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Validate walks the schema tree over the payload. Deterministic: the walk
// follows schema order, so identical payloads yield identical reports.
func Validate(p Payload) Report {
	var r Report
	if p.Fields == nil {
		r.MissingFields = append(r.MissingFields, "no payload")
		return r
	}
	checkFields(Schema(), p.Fields, "", &r)
	r.Valid = len(r.MissingFields) == 0 && len(r.TypeErrors) == 0
	return r
}

func checkFields(schema []Field, obj map[string]any, prefix string, r *Report) {
	for _, f := range schema {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		v, ok := obj[f.Name]
		if !ok || v == nil {
			r.MissingFields = append(r.MissingFields, path)
			continue
		}
		switch f.Kind {
		case KindString:
			if _, ok := v.(string); !ok {
				r.TypeErrors = append(r.TypeErrors, path+": expected string")
			}
		case KindNumber:
			if !isNumber(v) {
				r.TypeErrors = append(r.TypeErrors, path+": expected number")
			}
		case KindArray:
			items, ok := v.([]any)
			if !ok {
				r.TypeErrors = append(r.TypeErrors, path+": expected array")
				continue
			}
			if f.MinItems > 0 && len(items) < f.MinItems {
				r.Warnings = append(r.Warnings,
					fmt.Sprintf("%s: %d items, recommended at least %d", path, len(items), f.MinItems))
			}
		case KindObject:
			child, ok := v.(map[string]any)
			if !ok {
				r.TypeErrors = append(r.TypeErrors, path+": expected object")
				continue
			}
			checkFields(f.Children, child, path, r)
		}
	}
}
