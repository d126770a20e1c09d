package config

import "github.com/kvconnect/kvconnect/pkg/schema"

// Config represents a caller-supplied value set: a partial mapping of field
// key to primitive value, with nested mappings for option groups.
type Config map[string]any

// SchemaResponse is the JSON response for /api/schema
type SchemaResponse struct {
	Fields []schema.Field `json:"fields"`
}

// ValidateRequest is the JSON request for /api/validate
type ValidateRequest struct {
	Config Config `json:"config"`
}

// ValidateResponse is the JSON response for /api/validate
type ValidateResponse struct {
	Valid  bool                `json:"valid"`
	Errors []schema.FieldError `json:"errors,omitempty"`
}

// ResolveRequest is the JSON request for /api/resolve
type ResolveRequest struct {
	Config Config `json:"config"`
}

// ResolveResponse is the JSON response for /api/resolve
type ResolveResponse struct {
	Config map[string]any      `json:"config,omitempty"`
	Errors []schema.FieldError `json:"errors,omitempty"`
}
