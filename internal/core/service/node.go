package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"upscaler/internal/core/domain"
	"upscaler/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
)

const (
	defaultFileName = "image.png"
	defaultMimeType = "image/png"
)

// UpscaleNode runs the upscale flow over an ordered list of input items,
// one item at a time, producing one output item per input.
type UpscaleNode struct {
	resolver       port.ParameterResolver
	binaries       port.BinaryStore
	upscaler       port.Upscaler
	continueOnFail bool
}

func NewUpscaleNode(resolver port.ParameterResolver, binaries port.BinaryStore, upscaler port.Upscaler,
	continueOnFail bool) *UpscaleNode {
	return &UpscaleNode{resolver: resolver, binaries: binaries, upscaler: upscaler, continueOnFail: continueOnFail}
}

// Execute processes every input item in order. A failed item either becomes
// an error output entry (continue-on-failure) or aborts the whole run with
// the item index attached.
func (n *UpscaleNode) Execute(ctx context.Context, items []domain.InputItem) ([]domain.OutputItem, error) {
	runID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("error generating run ID: %w", err)
	}

	l := log.With().Str("runId", runID.String()).Logger()
	l.Info().Int("items", len(items)).Msg("starting upscale run")

	out := make([]domain.OutputItem, 0, len(items))

	for i := range items {
		result, err := n.processItem(ctx, &items[i], i)
		if err != nil {
			if n.continueOnFail {
				l.Warn().Err(err).Int("item", i).Msg("item failed, continuing")
				out = append(out, domain.OutputItem{
					JSON:       map[string]any{"error": err.Error()},
					PairedItem: domain.PairedItem{Item: i},
				})
				continue
			}

			l.Error().Err(err).Int("item", i).Msg("item failed, aborting run")
			return nil, &domain.ItemError{Index: i, Err: err}
		}

		result.PairedItem = domain.PairedItem{Item: i}
		out = append(out, *result)
	}

	l.Info().Int("items", len(out)).Msg("upscale run finished")

	return out, nil
}

func (n *UpscaleNode) processItem(ctx context.Context, item *domain.InputItem, index int) (*domain.OutputItem, error) {
	cfg, err := n.resolveConfig(index)
	if err != nil {
		return nil, err
	}

	image, err := n.binaries.Assert(item, cfg.BinaryPropertyName)
	if err != nil {
		return nil, err
	}

	if image.FileName == "" {
		image.FileName = defaultFileName
	}
	if image.MimeType == "" {
		image.MimeType = defaultMimeType
	}

	res, err := n.upscaler.Upscale(ctx, image, cfg)
	if err != nil {
		return nil, err
	}

	if res.Result.URL == "" {
		return nil, domain.ErrEmptyResultURL
	}

	upscaled, err := n.upscaler.Download(ctx, res.Result.URL)
	if err != nil {
		return nil, err
	}

	name := outputFileName(image.FileName, res.Result.FileExt)
	attachment := n.binaries.Pack(upscaled, name, res.Result.MimeType)

	return &domain.OutputItem{
		JSON: map[string]any{
			"original": res.Original,
			"result":   res.Result.ImageInfo,
		},
		Binary: map[string]domain.BinaryAttachment{
			cfg.OutputProperty(): attachment,
		},
	}, nil
}

func (n *UpscaleNode) resolveConfig(index int) (*domain.RequestConfig, error) {
	cfg := &domain.RequestConfig{}

	property, err := n.stringParam("binaryPropertyName", index)
	if err != nil {
		return nil, err
	}
	cfg.BinaryPropertyName = property

	mode, err := n.stringParam("resizeMode", index)
	if err != nil {
		return nil, err
	}
	cfg.ResizeMode = domain.ResizeMode(mode)

	switch cfg.ResizeMode {
	case domain.ResizeCustomDimensions:
		if cfg.CustomWidth, err = n.intParam("customWidth", index); err != nil {
			return nil, err
		}
		if cfg.CustomHeight, err = n.intParam("customHeight", index); err != nil {
			return nil, err
		}
		fit, err := n.stringParam("objectFit", index)
		if err != nil {
			return nil, err
		}
		cfg.ObjectFit = domain.ObjectFit(fit)
	default:
		if cfg.Scale, err = n.intParam("scale", index); err != nil {
			return nil, err
		}
	}

	format, err := n.resolver.Resolve("outputFormat", index)
	if err != nil {
		return nil, err
	}
	if format != nil {
		s, err := cast.ToStringE(format)
		if err != nil {
			return nil, &domain.ConfigurationError{Field: "outputFormat", Reason: err.Error()}
		}
		cfg.Options.OutputFormat = domain.OutputFormat(s)
	}

	// An explicit false stays distinct from unset: the upstream field is only
	// appended when the host resolved a concrete boolean.
	remove, err := n.resolver.Resolve("removeMetadata", index)
	if err != nil {
		return nil, err
	}
	if remove != nil {
		b, err := cast.ToBoolE(remove)
		if err != nil {
			return nil, &domain.ConfigurationError{Field: "removeMetadata", Reason: err.Error()}
		}
		cfg.Options.RemoveMetadata = &b
	}

	output, err := n.stringParam("outputBinaryPropertyName", index)
	if err != nil {
		return nil, err
	}
	cfg.Options.OutputBinaryPropertyName = output

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (n *UpscaleNode) stringParam(name string, index int) (string, error) {
	v, err := n.resolver.Resolve(name, index)
	if err != nil {
		return "", err
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &domain.ConfigurationError{Field: name, Reason: err.Error()}
	}

	return s, nil
}

func (n *UpscaleNode) intParam(name string, index int) (int, error) {
	v, err := n.resolver.Resolve(name, index)
	if err != nil {
		return 0, err
	}

	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, &domain.ConfigurationError{Field: name, Reason: err.Error()}
	}

	return i, nil
}

// outputFileName strips the last extension from the input name and appends
// the upscaled suffix with the extension reported by the API.
func outputFileName(inputName, fileExt string) string {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	return base + "_upscaled." + fileExt
}
