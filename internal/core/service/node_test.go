package service

import (
	"context"
	"errors"
	"testing"

	"upscaler/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResolver struct {
	params []map[string]any
	err    error
}

func (m *MockResolver) Resolve(name string, itemIndex int) (any, error) {
	if m.err != nil {
		return nil, m.err
	}

	defaults := map[string]any{
		"binaryPropertyName":       "data",
		"resizeMode":               "scale",
		"scale":                    2,
		"customWidth":              1024,
		"customHeight":             1024,
		"objectFit":                "cover",
		"outputBinaryPropertyName": "data",
	}

	if v, ok := m.params[itemIndex][name]; ok {
		return v, nil
	}

	return defaults[name], nil
}

type MockStore struct{}

func (m *MockStore) Assert(item *domain.InputItem, property string) (domain.BinaryFile, error) {
	attachment, ok := item.Binary[property]
	if !ok {
		return domain.BinaryFile{}, &domain.BinaryDataError{Property: property}
	}

	return domain.BinaryFile{
		Data:     []byte(attachment.Data),
		FileName: attachment.FileName,
		MimeType: attachment.MimeType,
	}, nil
}

func (m *MockStore) Pack(data []byte, fileName, mimeType string) domain.BinaryAttachment {
	return domain.BinaryAttachment{Data: string(data), FileName: fileName, MimeType: mimeType}
}

type MockUpscaler struct {
	result     *domain.UpscaleResult
	downloaded []byte
	uploadErr  error
	dlErr      error

	calls      []string
	gotImage   domain.BinaryFile
	gotConfig  *domain.RequestConfig
	failOnItem int
	itemCount  int
}

func (m *MockUpscaler) Upscale(_ context.Context, image domain.BinaryFile,
	cfg *domain.RequestConfig) (*domain.UpscaleResult, error) {
	m.calls = append(m.calls, "upload")
	m.gotImage = image
	m.gotConfig = cfg
	m.itemCount++

	if m.uploadErr != nil && (m.failOnItem == 0 || m.failOnItem == m.itemCount) {
		return nil, m.uploadErr
	}

	return m.result, nil
}

func (m *MockUpscaler) Download(_ context.Context, _ string) ([]byte, error) {
	m.calls = append(m.calls, "download")

	if m.dlErr != nil {
		return nil, m.dlErr
	}

	return m.downloaded, nil
}

func upscaleResult() *domain.UpscaleResult {
	return &domain.UpscaleResult{
		Original: domain.ImageInfo{Size: 1000, Width: 100, Height: 100, MimeType: "image/png", FileExt: "png"},
		Result: domain.ResultInfo{
			ImageInfo: domain.ImageInfo{Size: 4000, Width: 200, Height: 200, MimeType: "image/webp", FileExt: "webp"},
			URL:       "https://signed.example/result",
		},
	}
}

func inputItem(property, fileName, mimeType string) domain.InputItem {
	return domain.InputItem{
		Binary: map[string]domain.BinaryAttachment{
			property: {Data: "rawimagebytes", FileName: fileName, MimeType: mimeType},
		},
	}
}

func TestExecuteSuccess(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	node := NewUpscaleNode(&MockResolver{params: []map[string]any{{}}}, &MockStore{}, mu, false)

	out, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, domain.PairedItem{Item: 0}, out[0].PairedItem)
	assert.Equal(t, []string{"upload", "download"}, mu.calls)

	original, ok := out[0].JSON["original"].(domain.ImageInfo)
	require.True(t, ok)
	assert.Equal(t, upscaleResult().Original, original)

	// the signed URL never reaches the output payload
	result, ok := out[0].JSON["result"].(domain.ImageInfo)
	require.True(t, ok)
	assert.Equal(t, upscaleResult().Result.ImageInfo, result)

	attachment, ok := out[0].Binary["data"]
	require.True(t, ok)
	assert.Equal(t, "upscaled", attachment.Data)
	assert.Equal(t, "photo_upscaled.webp", attachment.FileName)
	assert.Equal(t, "image/webp", attachment.MimeType)
}

func TestExecuteDefaultsFileNameAndMimeType(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	node := NewUpscaleNode(&MockResolver{params: []map[string]any{{}}}, &MockStore{}, mu, false)

	out, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "", "")})
	require.NoError(t, err)

	assert.Equal(t, "image.png", mu.gotImage.FileName)
	assert.Equal(t, "image/png", mu.gotImage.MimeType)
	assert.Equal(t, "image_upscaled.webp", out[0].Binary["data"].FileName)
}

func TestExecuteScaleModeConfig(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	params := []map[string]any{{"resizeMode": "scale", "scale": 4}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, false)

	_, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.NoError(t, err)

	assert.Equal(t, domain.ResizeScale, mu.gotConfig.ResizeMode)
	assert.Equal(t, 4, mu.gotConfig.Scale)
	assert.Zero(t, mu.gotConfig.CustomWidth)
	assert.Zero(t, mu.gotConfig.CustomHeight)
	assert.Empty(t, mu.gotConfig.ObjectFit)
}

func TestExecuteCustomDimensionsConfig(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	params := []map[string]any{{
		"resizeMode":   "customDimensions",
		"customWidth":  800,
		"customHeight": 600,
		"objectFit":    "fill",
	}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, false)

	_, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.NoError(t, err)

	assert.Equal(t, domain.ResizeCustomDimensions, mu.gotConfig.ResizeMode)
	assert.Equal(t, 800, mu.gotConfig.CustomWidth)
	assert.Equal(t, 600, mu.gotConfig.CustomHeight)
	assert.Equal(t, domain.FitFill, mu.gotConfig.ObjectFit)
	assert.Zero(t, mu.gotConfig.Scale)
}

func TestExecuteRemoveMetadataUnsetStaysUnset(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	node := NewUpscaleNode(&MockResolver{params: []map[string]any{{}}}, &MockStore{}, mu, false)

	_, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.NoError(t, err)

	assert.Nil(t, mu.gotConfig.Options.RemoveMetadata)
}

func TestExecuteRemoveMetadataExplicitFalse(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	params := []map[string]any{{"removeMetadata": false}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, false)

	_, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.NoError(t, err)

	require.NotNil(t, mu.gotConfig.Options.RemoveMetadata)
	assert.False(t, *mu.gotConfig.Options.RemoveMetadata)
}

func TestExecuteOutputPropertyRelocated(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	params := []map[string]any{{"outputBinaryPropertyName": "enlarged"}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, false)

	out, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.NoError(t, err)

	_, ok := out[0].Binary["enlarged"]
	assert.True(t, ok)
	_, ok = out[0].Binary["data"]
	assert.False(t, ok)
}

func TestExecutePreservesOrderAndPairing(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	params := []map[string]any{{}, {}, {}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, false)

	items := []domain.InputItem{
		inputItem("data", "a.png", "image/png"),
		inputItem("data", "b.png", "image/png"),
		inputItem("data", "c.png", "image/png"),
	}

	out, err := node.Execute(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, out, 3)

	for i, item := range out {
		assert.Equal(t, i, item.PairedItem.Item)
	}
}

func TestExecuteMissingBinaryAborts(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), downloaded: []byte("upscaled")}
	node := NewUpscaleNode(&MockResolver{params: []map[string]any{{}}}, &MockStore{}, mu, false)

	out, err := node.Execute(context.Background(), []domain.InputItem{{}})
	require.Error(t, err)
	assert.Nil(t, out)

	var itemErr *domain.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 0, itemErr.Index)

	var binErr *domain.BinaryDataError
	assert.ErrorAs(t, err, &binErr)
}

func TestExecuteContinueOnFailCollectsErrorEntry(t *testing.T) {
	mu := &MockUpscaler{
		result:     upscaleResult(),
		downloaded: []byte("upscaled"),
		uploadErr:  errors.New("mock upstream error"),
		failOnItem: 1,
	}
	params := []map[string]any{{}, {}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, true)

	items := []domain.InputItem{
		inputItem("data", "a.png", "image/png"),
		inputItem("data", "b.png", "image/png"),
	}

	out, err := node.Execute(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "mock upstream error", out[0].JSON["error"])
	assert.Equal(t, 0, out[0].PairedItem.Item)
	assert.Empty(t, out[0].Binary)

	assert.NotContains(t, out[1].JSON, "error")
	assert.Equal(t, 1, out[1].PairedItem.Item)
}

func TestExecuteAbortCarriesItemIndex(t *testing.T) {
	mu := &MockUpscaler{
		result:     upscaleResult(),
		downloaded: []byte("upscaled"),
		uploadErr:  errors.New("mock upstream error"),
		failOnItem: 2,
	}
	params := []map[string]any{{}, {}}
	node := NewUpscaleNode(&MockResolver{params: params}, &MockStore{}, mu, false)

	items := []domain.InputItem{
		inputItem("data", "a.png", "image/png"),
		inputItem("data", "b.png", "image/png"),
	}

	out, err := node.Execute(context.Background(), items)
	require.Error(t, err)
	assert.Nil(t, out)

	var itemErr *domain.ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.Contains(t, err.Error(), "item 1")
	assert.Contains(t, err.Error(), "mock upstream error")
}

func TestExecuteEmptyResultURL(t *testing.T) {
	result := upscaleResult()
	result.Result.URL = ""

	mu := &MockUpscaler{result: result}
	node := NewUpscaleNode(&MockResolver{params: []map[string]any{{}}}, &MockStore{}, mu, false)

	_, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.ErrorIs(t, err, domain.ErrEmptyResultURL)

	assert.Equal(t, []string{"upload"}, mu.calls)
}

func TestExecuteDownloadError(t *testing.T) {
	mu := &MockUpscaler{result: upscaleResult(), dlErr: errors.New("mock download error")}
	node := NewUpscaleNode(&MockResolver{params: []map[string]any{{}}}, &MockStore{}, mu, false)

	_, err := node.Execute(context.Background(), []domain.InputItem{inputItem("data", "photo.png", "image/png")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mock download error")
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fileExt  string
		expected string
	}{
		{name: "replaces extension", input: "photo.png", fileExt: "webp", expected: "photo_upscaled.webp"},
		{name: "keeps inner dots", input: "my.holiday.photo.jpg", fileExt: "png", expected: "my.holiday.photo_upscaled.png"},
		{name: "no extension", input: "photo", fileExt: "png", expected: "photo_upscaled.png"},
		{name: "default name", input: "image.png", fileExt: "webp", expected: "image_upscaled.webp"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, outputFileName(tc.input, tc.fileExt))
		})
	}
}
