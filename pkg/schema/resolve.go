package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Resolve produces the effective configuration for the supplied values:
// active fields only, with user values coerced to their declared types and
// defaults substituted for omitted optional fields. Values supplied for
// inactive fields are dropped without error. On any validation failure the
// full error list is returned and the partial output is discarded.
func (s *Schema) Resolve(values Values) (Effective, Errors) {
	out, errs := resolveFields("", s.fields, values)
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func resolveFields(prefix string, fields []Field, values Values) (Effective, Errors) {
	act := activeFields(fields, values)
	out := make(Effective, len(fields))
	var errs Errors

	for i, f := range fields {
		if !act[i] {
			continue
		}
		path := fieldPath(prefix, f.Key)

		if f.Type == TypeRecord {
			raw, supplied := values[f.Key]
			nested := Values{}
			if supplied && raw != nil {
				m, err := cast.ToStringMapE(raw)
				if err != nil {
					errs = append(errs, FieldError{Field: path, Kind: ErrTypeMismatch, Detail: "expected a nested mapping"})
					continue
				}
				nested = Values(m)
			}
			sub, subErrs := resolveFields(path, f.Fields, nested)
			if len(subErrs) > 0 {
				errs = append(errs, subErrs...)
				continue
			}
			out[f.Key] = map[string]any(sub)
			continue
		}

		raw, supplied := values[f.Key]
		if isUnset(raw, supplied) {
			if f.Required {
				errs = append(errs, FieldError{Field: path, Kind: ErrMissingRequired})
				continue
			}
			out[f.Key] = f.Default
			continue
		}

		value, err := coerce(f.Type, raw)
		if err != nil {
			errs = append(errs, FieldError{Field: path, Kind: ErrTypeMismatch, Detail: fmt.Sprintf("cannot interpret %v as %s", raw, f.Type)})
			continue
		}
		if len(f.Options) > 0 && !containsOption(f.Options, cast.ToString(value)) {
			errs = append(errs, FieldError{Field: path, Kind: ErrTypeMismatch, Detail: fmt.Sprintf("must be one of: %s", strings.Join(f.Options, ", "))})
			continue
		}
		out[f.Key] = value
	}

	return out, errs
}

// isUnset treats empty strings like missing keys: every source feeding a
// value set (forms, env vars, YAML) spells "not filled in" as "".
func isUnset(raw any, supplied bool) bool {
	if !supplied || raw == nil {
		return true
	}
	s, ok := raw.(string)
	return ok && s == ""
}

func coerce(t Type, raw any) (any, error) {
	switch t {
	case TypeString:
		return cast.ToStringE(raw)
	case TypeBool:
		return cast.ToBoolE(raw)
	case TypeNumber:
		f, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", raw)
		}
		return int(f), nil
	default:
		return nil, fmt.Errorf("unsupported type %s", t)
	}
}
