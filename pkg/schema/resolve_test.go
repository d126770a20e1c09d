package schema

import (
	"reflect"
	"testing"
)

func TestResolve_DefaultsAndCoercion(t *testing.T) {
	s := testSchema(t)

	tests := []struct {
		name   string
		values Values
		want   Effective
	}{
		{
			name:   "empty input resolves to defaults",
			values: Values{},
			want:   Effective{"mode": "basic", "verbose": false},
		},
		{
			name:   "numeric string coerced",
			values: Values{"verbose": true, "limits": map[string]any{"depth": "7"}},
			want: Effective{
				"mode":    "basic",
				"verbose": true,
				"limits":  map[string]any{"depth": 7, "full": false, "maxLines": 100},
			},
		},
		{
			name:   "bool string coerced",
			values: Values{"verbose": "true", "limits": map[string]any{"full": "true"}},
			want: Effective{
				"mode":    "basic",
				"verbose": true,
				"limits":  map[string]any{"depth": 5, "full": true},
			},
		},
		{
			name:   "empty string treated as unset",
			values: Values{"mode": "", "verbose": false},
			want:   Effective{"mode": "basic", "verbose": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := s.Resolve(tt.values)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolve_EmptyStringControllerUsesDefault(t *testing.T) {
	s, err := New(
		Field{Key: "mode", Type: TypeString, Default: "advanced"},
		Field{Key: "detail", Type: TypeString, Default: "d", VisibleWhen: []Clause{{Field: "mode", AnyOf: []any{"advanced"}}}},
	)
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}

	// A blank controller resolves to its default, so the fields that
	// default gates must be in the output too: defaulting and visibility
	// have to agree or the result is incoherent.
	got, errs := s.Resolve(Values{"mode": ""})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := Effective{"mode": "advanced", "detail": "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %#v, want %#v", got, want)
	}
}

func TestResolve_ErrorAggregation(t *testing.T) {
	s := testSchema(t)

	// detail is missing, depth is garbage: both problems must be reported
	// in one pass.
	_, errs := s.Resolve(Values{
		"mode":    "advanced",
		"verbose": true,
		"limits":  map[string]any{"depth": "deep"},
	})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}

	byField := map[string]ErrorKind{}
	for _, e := range errs {
		byField[e.Field] = e.Kind
	}
	if byField["detail"] != ErrMissingRequired {
		t.Errorf("expected missing_required for detail, got %v", byField)
	}
	if byField["limits.depth"] != ErrTypeMismatch {
		t.Errorf("expected type_mismatch for limits.depth, got %v", byField)
	}
}

func TestResolve_NeverPartial(t *testing.T) {
	s := testSchema(t)
	out, errs := s.Resolve(Values{"mode": "advanced"})
	if len(errs) == 0 {
		t.Fatal("expected resolution to fail")
	}
	if out != nil {
		t.Errorf("failed resolution must not return partial output, got %#v", out)
	}
}

func TestResolve_HiddenFieldValuesAreDropped(t *testing.T) {
	s := testSchema(t)

	// detail and traceFile are hidden in basic mode. Garbage supplied for
	// them must neither error nor leak into the output.
	got, errs := s.Resolve(Values{
		"mode":      "basic",
		"detail":    12345,
		"traceFile": map[string]any{"not": "a string"},
		"limits":    map[string]any{"depth": "garbage"},
	})
	if len(errs) > 0 {
		t.Fatalf("hidden fields must not produce errors: %v", errs)
	}
	want := Effective{"mode": "basic", "verbose": false}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %#v, want %#v", got, want)
	}
}

func TestResolve_RequiredIfActiveTransition(t *testing.T) {
	s := testSchema(t)

	// Hidden: resolution succeeds without detail.
	if _, errs := s.Resolve(Values{"mode": "basic"}); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	// Shown: the same input now fails.
	_, errs := s.Resolve(Values{"mode": "advanced"})
	if len(errs) != 1 || errs[0].Field != "detail" || errs[0].Kind != ErrMissingRequired {
		t.Fatalf("expected missing_required for detail, got %v", errs)
	}

	// Supplying the value restores success.
	got, errs := s.Resolve(Values{"mode": "advanced", "detail": "x"})
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got["detail"] != "x" {
		t.Errorf("expected detail=x in output, got %#v", got)
	}
}

func TestResolve_EnumMembership(t *testing.T) {
	s := testSchema(t)
	_, errs := s.Resolve(Values{"mode": "turbo"})
	if len(errs) != 1 || errs[0].Kind != ErrTypeMismatch || errs[0].Field != "mode" {
		t.Fatalf("expected type_mismatch for mode, got %v", errs)
	}
}

func TestResolve_FractionalNumberRejected(t *testing.T) {
	s := testSchema(t)
	_, errs := s.Resolve(Values{"verbose": true, "limits": map[string]any{"depth": 2.5}})
	if len(errs) != 1 || errs[0].Field != "limits.depth" || errs[0].Kind != ErrTypeMismatch {
		t.Fatalf("expected type_mismatch for limits.depth, got %v", errs)
	}
}

func TestResolve_GroupValueMustBeMapping(t *testing.T) {
	s := testSchema(t)
	_, errs := s.Resolve(Values{"verbose": true, "limits": 42})
	if len(errs) != 1 || errs[0].Field != "limits" || errs[0].Kind != ErrTypeMismatch {
		t.Fatalf("expected type_mismatch for limits, got %v", errs)
	}
}

func TestResolve_NestedRequired(t *testing.T) {
	s, err := New(
		Field{Key: "group", Type: TypeRecord, Fields: []Field{
			{Key: "token", Type: TypeString, Required: true},
		}},
	)
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}

	_, errs := s.Resolve(Values{})
	if len(errs) != 1 || errs[0].Field != "group.token" || errs[0].Kind != ErrMissingRequired {
		t.Fatalf("expected missing_required for group.token, got %v", errs)
	}
	if errs[0].Error() != "group.token is required" {
		t.Errorf("unexpected message: %q", errs[0].Error())
	}
}

func TestResolve_Idempotent(t *testing.T) {
	s := testSchema(t)
	values := Values{"mode": "advanced", "detail": "d", "verbose": true}

	first, firstErrs := s.Resolve(values)
	second, secondErrs := s.Resolve(values)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("outputs differ between runs: %#v vs %#v", first, second)
	}
	if !reflect.DeepEqual(firstErrs, secondErrs) {
		t.Errorf("error lists differ between runs: %v vs %v", firstErrs, secondErrs)
	}

	bad := Values{"mode": "advanced", "limits": 1, "verbose": true}
	_, e1 := s.Resolve(bad)
	_, e2 := s.Resolve(bad)
	if !reflect.DeepEqual(e1, e2) {
		t.Errorf("error lists differ between runs: %v vs %v", e1, e2)
	}
}
