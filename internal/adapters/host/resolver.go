package host

import (
	"fmt"
	"slices"

	"upscaler/internal/core/domain"

	"github.com/spf13/cast"
)

// SchemaResolver resolves per-item parameter values against a declarative
// schema: hidden fields and unset fields fall back to their declared default,
// set values are checked for option membership.
type SchemaResolver struct {
	schema domain.Schema
	params []map[string]any
}

func NewSchemaResolver(schema domain.Schema, params []map[string]any) *SchemaResolver {
	return &SchemaResolver{schema: schema, params: params}
}

func (r *SchemaResolver) Resolve(name string, itemIndex int) (any, error) {
	field, ok := r.schema.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownParam, name)
	}

	if itemIndex < 0 || itemIndex >= len(r.params) {
		return nil, fmt.Errorf("%w: %d", domain.ErrItemUnavailable, itemIndex)
	}

	params := r.params[itemIndex]
	if params == nil {
		params = map[string]any{}
	}

	if !field.Visible(params) {
		return field.Default, nil
	}

	value, ok := params[name]
	if !ok {
		return field.Default, nil
	}

	if len(field.Options) > 0 {
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, &domain.ConfigurationError{Field: name, Reason: err.Error()}
		}
		if !slices.Contains(field.Options, s) {
			return nil, &domain.ConfigurationError{Field: name, Reason: fmt.Sprintf("value %q not allowed", s)}
		}
	}

	return value, nil
}
