package domain

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

type ResizeMode string

const (
	ResizeScale            ResizeMode = "scale"
	ResizeCustomDimensions ResizeMode = "customDimensions"
)

type ObjectFit string

const (
	FitCover   ObjectFit = "cover"
	FitContain ObjectFit = "contain"
	FitFill    ObjectFit = "fill"
)

type OutputFormat string

const (
	FormatPNG  OutputFormat = "png"
	FormatJPG  OutputFormat = "jpg"
	FormatWebP OutputFormat = "webp"
)

// DefaultBinaryProperty is the attachment key used for both input and output
// when none is configured.
const DefaultBinaryProperty = "data"

// RequestOptions is the optional bag of upload modifiers. RemoveMetadata is a
// pointer so an explicit false is sent as "0" while unset omits the field.
type RequestOptions struct {
	OutputFormat             OutputFormat `validate:"omitempty,oneof=png jpg webp"`
	RemoveMetadata           *bool
	OutputBinaryPropertyName string
}

// RequestConfig holds the per-item parameters resolved from the host,
// immutable once built.
type RequestConfig struct {
	BinaryPropertyName string     `validate:"required"`
	ResizeMode         ResizeMode `validate:"required,oneof=scale customDimensions"`
	Scale              int        `validate:"omitempty,oneof=2 4"`
	CustomWidth        int        `validate:"omitempty,gt=0"`
	CustomHeight       int        `validate:"omitempty,gt=0"`
	ObjectFit          ObjectFit  `validate:"omitempty,oneof=cover contain fill"`
	Options            RequestOptions
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config against the schema constraints, including the
// fields required by the active resize mode.
func (c *RequestConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ConfigurationError{Field: fe.Field(), Reason: "failed " + fe.Tag() + " constraint"}
		}
		return err
	}

	switch c.ResizeMode {
	case ResizeScale:
		if c.Scale == 0 {
			return &ConfigurationError{Field: "scale", Reason: "required when resizeMode is scale"}
		}
	case ResizeCustomDimensions:
		if c.CustomWidth <= 0 {
			return &ConfigurationError{Field: "customWidth", Reason: "required when resizeMode is customDimensions"}
		}
		if c.CustomHeight <= 0 {
			return &ConfigurationError{Field: "customHeight", Reason: "required when resizeMode is customDimensions"}
		}
		if c.ObjectFit == "" {
			return &ConfigurationError{Field: "objectFit", Reason: "required when resizeMode is customDimensions"}
		}
	}

	return nil
}

// OutputProperty returns the configured output attachment key, falling back
// to the default.
func (c *RequestConfig) OutputProperty() string {
	if c.Options.OutputBinaryPropertyName == "" {
		return DefaultBinaryProperty
	}
	return c.Options.OutputBinaryPropertyName
}
