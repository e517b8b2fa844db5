package domain

// BinaryAttachment is a named byte payload on an item, stored in the host's
// internal base64 encoding together with optional file metadata.
type BinaryAttachment struct {
	Data     string `json:"data"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// BinaryFile is the decoded view of an attachment handed to upstream adapters.
type BinaryFile struct {
	Data     []byte
	FileName string
	MimeType string
}

// InputItem is one unit of data flowing through a run. It is owned by the
// host and read-only to the adapter.
type InputItem struct {
	JSON   map[string]any              `json:"json"`
	Binary map[string]BinaryAttachment `json:"binary,omitempty"`
}

// PairedItem records which input item index produced an output item.
type PairedItem struct {
	Item int `json:"item"`
}

// OutputItem is the per-item result: a JSON payload, zero or more binary
// attachments and a back-reference to the originating input index.
type OutputItem struct {
	JSON       map[string]any              `json:"json"`
	Binary     map[string]BinaryAttachment `json:"binary,omitempty"`
	PairedItem PairedItem                  `json:"pairedItem"`
}
