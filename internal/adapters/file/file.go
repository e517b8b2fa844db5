package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"upscaler/internal/core/domain"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// LoadImage reads a local image into a decoded binary file, sniffing the MIME
// type from the content.
func LoadImage(path string) (domain.BinaryFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("error reading input image %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return domain.BinaryFile{}, err
	}

	mime := mimetype.Detect(buf)

	log.Debug().Str("path", path).Str("mimeType", mime.String()).Int("bytes", len(buf)).Msg("loaded input image")

	return domain.BinaryFile{
		Data:     buf,
		FileName: filepath.Base(path),
		MimeType: mime.String(),
	}, nil
}

// Unpacker decodes a host-encoded attachment back to raw bytes.
type Unpacker interface {
	Unpack(attachment domain.BinaryAttachment) ([]byte, error)
}

// Writer persists output items to a directory: the decoded attachment bytes
// plus a JSON sidecar with the item payload.
type Writer struct {
	dir      string
	unpacker Unpacker
}

func NewWriter(dir string, unpacker Unpacker) (*Writer, error) {
	if dir == "" {
		return nil, domain.ErrOutputDirUnset
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating output directory %w", err)
	}

	return &Writer{dir: dir, unpacker: unpacker}, nil
}

func (w *Writer) Write(items []domain.OutputItem) error {
	for _, item := range items {
		if err := w.writeItem(item); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) writeItem(item domain.OutputItem) error {
	for property, attachment := range item.Binary {
		data, err := w.unpacker.Unpack(attachment)
		if err != nil {
			return err
		}

		name := attachment.FileName
		if name == "" {
			name = fmt.Sprintf("item_%d_%s", item.PairedItem.Item, property)
		}

		path := filepath.Join(w.dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			err = fmt.Errorf("error writing output image %w", err)
			log.Error().Err(err).Str("path", path).Send()
			return err
		}

		log.Debug().Str("path", path).Int("bytes", len(data)).Msg("wrote output image")
	}

	payload, err := json.MarshalIndent(item.JSON, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output payload %w", err)
	}

	path := filepath.Join(w.dir, fmt.Sprintf("item_%d.json", item.PairedItem.Item))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		err = fmt.Errorf("error writing output payload %w", err)
		log.Error().Err(err).Str("path", path).Send()
		return err
	}

	log.Debug().Str("path", path).Msg("wrote output payload")

	return nil
}
