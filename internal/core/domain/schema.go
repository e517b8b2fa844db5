package domain

// FieldKind is the primitive type of a schema field.
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindNumber  FieldKind = "number"
	KindBoolean FieldKind = "boolean"
)

// Field declares one configurable parameter: its type, default, allowed
// values and a visibility predicate over the other parameters' raw values.
type Field struct {
	Name        string
	Kind        FieldKind
	Default     any
	Options     []string
	DisplayWhen func(params map[string]any) bool
}

// Visible reports whether the field should be surfaced given the raw
// parameter values of an item. Fields without a predicate are always visible.
func (f Field) Visible(params map[string]any) bool {
	if f.DisplayWhen == nil {
		return true
	}
	return f.DisplayWhen(params)
}

// Schema is the ordered parameter declaration for a node.
type Schema []Field

// Lookup returns the field with the given name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func resizeModeIs(mode ResizeMode) func(map[string]any) bool {
	return func(params map[string]any) bool {
		v, ok := params["resizeMode"]
		if !ok {
			return mode == ResizeScale
		}
		s, ok := v.(string)
		return ok && ResizeMode(s) == mode
	}
}

// UpscaleSchema declares the parameters of the upscale node. The scale factor
// is only visible in scale mode; the dimension fields only in
// customDimensions mode.
func UpscaleSchema() Schema {
	return Schema{
		{Name: "binaryPropertyName", Kind: KindString, Default: DefaultBinaryProperty},
		{Name: "resizeMode", Kind: KindString, Default: string(ResizeScale),
			Options: []string{string(ResizeScale), string(ResizeCustomDimensions)}},
		{Name: "scale", Kind: KindNumber, Default: 2,
			Options:     []string{"2", "4"},
			DisplayWhen: resizeModeIs(ResizeScale)},
		{Name: "customWidth", Kind: KindNumber, Default: 1024,
			DisplayWhen: resizeModeIs(ResizeCustomDimensions)},
		{Name: "customHeight", Kind: KindNumber, Default: 1024,
			DisplayWhen: resizeModeIs(ResizeCustomDimensions)},
		{Name: "objectFit", Kind: KindString, Default: string(FitCover),
			Options:     []string{string(FitCover), string(FitContain), string(FitFill)},
			DisplayWhen: resizeModeIs(ResizeCustomDimensions)},
		{Name: "outputFormat", Kind: KindString,
			Options: []string{string(FormatPNG), string(FormatJPG), string(FormatWebP)}},
		{Name: "removeMetadata", Kind: KindBoolean},
		{Name: "outputBinaryPropertyName", Kind: KindString, Default: DefaultBinaryProperty},
	}
}
