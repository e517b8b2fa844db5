package host

import (
	"encoding/base64"
	"fmt"

	"upscaler/internal/core/domain"
)

// Base64Store keeps binary attachments in the host's internal base64
// encoding and converts between that and raw bytes at the adapter boundary.
type Base64Store struct{}

func NewBase64Store() *Base64Store {
	return &Base64Store{}
}

func (s *Base64Store) Assert(item *domain.InputItem, property string) (domain.BinaryFile, error) {
	attachment, ok := item.Binary[property]
	if !ok {
		return domain.BinaryFile{}, &domain.BinaryDataError{Property: property}
	}

	data, err := base64.StdEncoding.DecodeString(attachment.Data)
	if err != nil {
		return domain.BinaryFile{}, fmt.Errorf("error decoding attachment %q: %w", property, err)
	}

	return domain.BinaryFile{
		Data:     data,
		FileName: attachment.FileName,
		MimeType: attachment.MimeType,
	}, nil
}

func (s *Base64Store) Pack(data []byte, fileName, mimeType string) domain.BinaryAttachment {
	return domain.BinaryAttachment{
		Data:     base64.StdEncoding.EncodeToString(data),
		FileName: fileName,
		MimeType: mimeType,
	}
}

// Unpack decodes a packed attachment back to raw bytes, for hosts that
// persist outputs.
func (s *Base64Store) Unpack(attachment domain.BinaryAttachment) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(attachment.Data)
	if err != nil {
		return nil, fmt.Errorf("error decoding attachment: %w", err)
	}

	return data, nil
}
