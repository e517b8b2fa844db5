package domain

// ImageInfo describes one side of an upscale exchange as reported by the API.
type ImageInfo struct {
	Size     int    `json:"size"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MimeType string `json:"mimeType"`
	FileExt  string `json:"fileExt"`
}

// ResultInfo is ImageInfo plus the signed, time-limited download URL. The URL
// is consumed during processing and never forwarded to output items.
type ResultInfo struct {
	ImageInfo
	URL string `json:"url"`
}

// UpscaleResult is the upstream API response for one upload.
type UpscaleResult struct {
	Original ImageInfo  `json:"original"`
	Result   ResultInfo `json:"result"`
}
