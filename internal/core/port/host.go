package port

import (
	"upscaler/internal/core/domain"
)

type ParameterResolver interface {
	// Resolve returns the value of a named parameter for the item at the given
	// index, applying schema defaults. Optional fields without a default
	// resolve to nil when unset.
	Resolve(name string, itemIndex int) (any, error)
}

type CredentialSource interface {
	// APIKey returns the secret for the configured credential type or an error
	// if none is stored.
	APIKey() (string, error)
}

type BinaryStore interface {
	// Assert returns the decoded bytes and metadata of a named binary property
	// on an item, failing if the property is absent.
	Assert(item *domain.InputItem, property string) (domain.BinaryFile, error)
	// Pack encodes raw bytes into the host's internal attachment
	// representation.
	Pack(data []byte, fileName, mimeType string) domain.BinaryAttachment
}
