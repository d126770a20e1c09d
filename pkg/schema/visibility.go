package schema

import (
	"github.com/spf13/cast"
)

// Evaluate computes which fields are active under the supplied values.
// Names are returned in declaration order; nested fields of an active
// record appear with dotted paths ("tls.caCert"). Pure function of
// (schema, values).
func (s *Schema) Evaluate(values Values) []string {
	var active []string
	collectActive("", s.fields, values, &active)
	return active
}

func collectActive(prefix string, fields []Field, values Values, out *[]string) {
	act := activeFields(fields, values)
	for i, f := range fields {
		if !act[i] {
			continue
		}
		path := fieldPath(prefix, f.Key)
		*out = append(*out, path)
		if f.Type == TypeRecord {
			collectActive(path, f.Fields, nestedValues(values, f.Key), out)
		}
	}
}

// activeFields marks each field of one scope as active or not, in a single
// pass. Valid because controllers are always declared earlier in the same
// scope (enforced at construction).
func activeFields(fields []Field, values Values) []bool {
	act := make([]bool, len(fields))
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		act[i] = clausesHold(f, fields, act, index, values)
		index[f.Key] = i
	}
	return act
}

func clausesHold(f Field, fields []Field, act []bool, index map[string]int, values Values) bool {
	for _, c := range f.VisibleWhen {
		i, ok := index[c.Field]
		if !ok || !act[i] {
			// A hidden controller can never satisfy a clause.
			return false
		}
		current, supplied := values[fields[i].Key]
		if isUnset(current, supplied) {
			// Unset or blank fields behave as their default for
			// visibility, matching the resolver's defaulting.
			current = fields[i].Default
		}
		if !memberOf(current, c.AnyOf) {
			return false
		}
	}
	return true
}

func memberOf(value any, anyOf []any) bool {
	for _, want := range anyOf {
		if looseEqual(value, want) {
			return true
		}
	}
	return false
}

// looseEqual compares a current value against a clause constant, accepting
// the string spellings a form or env source produces ("true", "6379").
func looseEqual(got, want any) bool {
	if got == nil {
		return want == nil
	}
	switch w := want.(type) {
	case bool:
		b, err := cast.ToBoolE(got)
		return err == nil && b == w
	case string:
		s, err := cast.ToStringE(got)
		return err == nil && s == w
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(got)
		return err == nil && f == cast.ToFloat64(w)
	default:
		return false
	}
}

func nestedValues(values Values, key string) Values {
	raw, ok := values[key]
	if !ok || raw == nil {
		return Values{}
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return Values{}
	}
	return Values(m)
}
