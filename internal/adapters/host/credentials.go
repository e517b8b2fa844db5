package host

import (
	"os"

	"upscaler/internal/core/domain"

	"github.com/spf13/viper"
)

const apiKeyEnv = "UPSCALEIMG_API_KEY"

// ViperCredentials serves the UpscaleImg API key from the loaded config file,
// with an environment variable override.
type ViperCredentials struct{}

func NewViperCredentials() *ViperCredentials {
	return &ViperCredentials{}
}

func (c *ViperCredentials) APIKey() (string, error) {
	if key := os.Getenv(apiKeyEnv); key != "" {
		return key, nil
	}

	key := viper.GetString("upscaleimg.api_key")
	if key == "" {
		return "", domain.ErrMissingAPIKey
	}

	return key, nil
}
