package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"

	"upscaler/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// DefaultEndpoint is the production upload endpoint of the UpscaleImg API.
const DefaultEndpoint = "https://upscaleimg.app/api/v1/upscale"

// Client provides a wrapper for the UpscaleImg API.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{endpoint: endpoint, apiKey: apiKey, client: &http.Client{}}
}

// Upscale uploads the image as multipart form data together with the resize
// parameters and parses the JSON response.
func (c *Client) Upscale(ctx context.Context, image domain.BinaryFile,
	cfg *domain.RequestConfig) (*domain.UpscaleResult, error) {
	body, contentType, err := buildForm(image, cfg)
	if err != nil {
		return nil, fmt.Errorf("error encoding upscale request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("error creating upscale request: %w", err)
	}

	cred := domain.UpscaleImgCredential()
	req.Header.Set(cred.AuthHeader, cred.AuthScheme+" "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	log.Debug().Str("endpoint", c.endpoint).Str("fileName", image.FileName).Msg("uploading image")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamRequestError{Op: "upload", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &domain.UpstreamRequestError{Op: "upload", Err: err}
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.UpstreamRequestError{
			Op:  "upload",
			Err: fmt.Errorf("unexpected status code %d: %s", res.StatusCode, strings.TrimSpace(string(raw))),
		}
	}

	var result domain.UpscaleResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &domain.UpstreamRequestError{Op: "upload", Err: fmt.Errorf("error unmarshalling response: %w", err)}
	}

	log.Debug().Interface("result", result).Msg("upscale response")

	return &result, nil
}

// Download fetches the upscaled image bytes from a signed result URL. The URL
// embeds its own authorization, no header is sent.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating download request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.UpstreamRequestError{Op: "download", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamRequestError{
			Op:  "download",
			Err: fmt.Errorf("unexpected status code on download: %d", res.StatusCode),
		}
	}

	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &domain.UpstreamRequestError{Op: "download", Err: err}
	}

	log.Debug().Int("bytes", len(buf)).Msg("downloaded upscaled image")

	return buf, nil
}

func buildForm(image domain.BinaryFile, cfg *domain.RequestConfig) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(image.FileName)))
	header.Set("Content-Type", image.MimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", err
	}

	if cfg.ResizeMode == domain.ResizeScale {
		if err := w.WriteField("scale", strconv.Itoa(cfg.Scale)); err != nil {
			return nil, "", err
		}
	} else {
		fields := map[string]string{
			"customWidth":  strconv.Itoa(cfg.CustomWidth),
			"customHeight": strconv.Itoa(cfg.CustomHeight),
			"objectFit":    string(cfg.ObjectFit),
		}
		for _, name := range []string{"customWidth", "customHeight", "objectFit"} {
			if err := w.WriteField(name, fields[name]); err != nil {
				return nil, "", err
			}
		}
	}

	if cfg.Options.OutputFormat != "" {
		if err := w.WriteField("outputFormat", string(cfg.Options.OutputFormat)); err != nil {
			return nil, "", err
		}
	}

	if cfg.Options.RemoveMetadata != nil {
		value := "0"
		if *cfg.Options.RemoveMetadata {
			value = "1"
		}
		if err := w.WriteField("removeMetadata", value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
