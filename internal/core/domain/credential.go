package domain

// CredentialProperty is one stored credential field.
type CredentialProperty struct {
	Name     string
	Kind     FieldKind
	Secret   bool
	Required bool
}

// CredentialType declares a named credential and its bearer authentication
// rule. It is rendering data for hosts, not logic.
type CredentialType struct {
	Name             string
	DisplayName      string
	DocumentationURL string
	Properties       []CredentialProperty
	AuthHeader       string
	AuthScheme       string
	AuthProperty     string
}

// UpscaleImgCredential is the credential type consumed by the upscale node:
// a single secret API key sent as "Authorization: Bearer <apiKey>".
func UpscaleImgCredential() CredentialType {
	return CredentialType{
		Name:             "upscaleImgApi",
		DisplayName:      "UpscaleImg API",
		DocumentationURL: "https://upscaleimg.app/docs/api",
		Properties: []CredentialProperty{
			{Name: "apiKey", Kind: KindString, Secret: true, Required: true},
		},
		AuthHeader:   "Authorization",
		AuthScheme:   "Bearer",
		AuthProperty: "apiKey",
	}
}
