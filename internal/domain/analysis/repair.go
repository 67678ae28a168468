package analysis

// Repair patches a syntactically valid but incomplete payload into a fully
// schema-conformant structure. Present fields keep their original values,
// including fields outside the schema; missing or type-mismatched fields get
// the schema default, with missing objects synthesized wholesale.
func Repair(fields map[string]any, report Report) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	if report.Valid {
		return out
	}
	mergeDefaults(Schema(), out)
	return out
}

func mergeDefaults(schema []Field, obj map[string]any) {
	for _, f := range schema {
		v, ok := obj[f.Name]
		if !ok || v == nil {
			obj[f.Name] = DefaultValue(f)
			continue
		}
		switch f.Kind {
		case KindString:
			if _, ok := v.(string); !ok {
				obj[f.Name] = DefaultValue(f)
			}
		case KindNumber:
			if !isNumber(v) {
				obj[f.Name] = DefaultValue(f)
			}
		case KindArray:
			// short arrays are only a warning; replace wrong types only
			if _, ok := v.([]any); !ok {
				obj[f.Name] = DefaultValue(f)
			}
		case KindObject:
			child, ok := v.(map[string]any)
			if !ok {
				obj[f.Name] = DefaultValue(f)
				continue
			}
			patched := make(map[string]any, len(child))
			for k, cv := range child {
				patched[k] = cv
			}
			mergeDefaults(f.Children, patched)
			obj[f.Name] = patched
		}
	}
}
