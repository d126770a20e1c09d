package schema

import (
	"fmt"

	"github.com/spf13/cast"
)

// Type is the value kind of a field.
type Type string

const (
	TypeString Type = "string"
	TypeNumber Type = "number"
	TypeBool   Type = "bool"
	TypeRecord Type = "record"
)

// Clause is one condition of a visibility predicate. The clause holds when
// the controlling field's current value is a member of AnyOf. A field's
// VisibleWhen clauses are combined with AND.
type Clause struct {
	Field string `json:"field"`
	AnyOf []any  `json:"anyOf"`
}

// Field describes a single configurable value: its type, default,
// requiredness and the conditions under which it is active. A record field
// groups nested fields and gates them with its own VisibleWhen.
type Field struct {
	Key         string   `json:"key"`
	Type        Type     `json:"type"`
	Default     any      `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Secret      bool     `json:"secret,omitempty"`
	Options     []string `json:"options,omitempty"`
	VisibleWhen []Clause `json:"visibleWhen,omitempty"`
	Fields      []Field  `json:"fields,omitempty"`
}

// Values is a partial mapping of field key to user-supplied value. Missing
// keys mean "not yet assigned". Nested record values are mappings themselves.
type Values map[string]any

// Effective is the resolved output: active fields only, each with its
// validated value or default. Nested records appear as nested maps.
type Effective map[string]any

// Schema is an ordered collection of field descriptors. It is immutable
// after construction and safe for concurrent use.
type Schema struct {
	fields []Field
}

// New builds a Schema and lints it. Construction fails with a
// *DefinitionError if a field key is duplicated, a VisibleWhen clause
// references an undeclared or later field, a clause has an empty AnyOf, a
// non-record field carries nested fields, or an enum default is not one of
// its options.
func New(fields ...Field) (*Schema, error) {
	if err := lintFields("", fields); err != nil {
		return nil, err
	}
	return &Schema{fields: fields}, nil
}

// MustNew is New for process-startup schema definitions: a broken schema is
// a programmer error and must not let the process come up.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the top-level field descriptors in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a top-level field by key.
func (s *Schema) Field(key string) (Field, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

func lintFields(prefix string, fields []Field) error {
	declared := map[string]int{}
	for i, f := range fields {
		path := fieldPath(prefix, f.Key)
		if f.Key == "" {
			return &DefinitionError{Field: path, Reason: "field has no key"}
		}
		if _, dup := declared[f.Key]; dup {
			return &DefinitionError{Field: path, Reason: "duplicate field key"}
		}

		for _, c := range f.VisibleWhen {
			if len(c.AnyOf) == 0 {
				return &DefinitionError{Field: path, Reason: fmt.Sprintf("visibility clause on %q allows no values", c.Field)}
			}
			// Controllers must be declared earlier in the same scope, so
			// visibility is computable in one linear pass.
			if _, ok := declared[c.Field]; !ok {
				return &DefinitionError{Field: path, Reason: fmt.Sprintf("visibility clause references undeclared or later field %q", c.Field)}
			}
		}

		switch f.Type {
		case TypeRecord:
			if len(f.Fields) == 0 {
				return &DefinitionError{Field: path, Reason: "record field has no nested fields"}
			}
			if f.Default != nil {
				return &DefinitionError{Field: path, Reason: "record field cannot carry a default"}
			}
			if err := lintFields(path, f.Fields); err != nil {
				return err
			}
		case TypeString, TypeNumber, TypeBool:
			if len(f.Fields) > 0 {
				return &DefinitionError{Field: path, Reason: "only record fields may have nested fields"}
			}
		default:
			return &DefinitionError{Field: path, Reason: fmt.Sprintf("unknown field type %q", f.Type)}
		}

		if len(f.Options) > 0 && f.Default != nil {
			def := cast.ToString(f.Default)
			if def != "" && !containsOption(f.Options, def) {
				return &DefinitionError{Field: path, Reason: fmt.Sprintf("default %q is not one of the allowed options", def)}
			}
		}

		declared[f.Key] = i
	}
	return nil
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func fieldPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
