package port

import (
	"context"

	"upscaler/internal/core/domain"
)

type Upscaler interface {
	// Upscale uploads an image with the resolved request parameters and
	// returns the parsed API response.
	Upscale(ctx context.Context, image domain.BinaryFile, cfg *domain.RequestConfig) (*domain.UpscaleResult, error)
	// Download fetches the raw bytes behind a signed result URL.
	Download(ctx context.Context, url string) ([]byte, error)
}
