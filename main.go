package main

import (
	"context"
	"os"
	"os/signal"

	"upscaler/internal/adapters/file"
	"upscaler/internal/adapters/host"
	"upscaler/internal/adapters/upstream"
	"upscaler/internal/core/domain"
	"upscaler/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting upscaler...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("log.level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	credentials := host.NewViperCredentials()
	apiKey, err := credentials.APIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("no API key configured")
	}

	store := host.NewBase64Store()
	client := upstream.NewClient(viper.GetString("upscaleimg.endpoint"), apiKey)

	items, params, err := loadItems(store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed loading input items")
	}

	resolver := host.NewSchemaResolver(domain.UpscaleSchema(), params)

	node := service.NewUpscaleNode(resolver, store, client, viper.GetBool("run.continue_on_fail"))

	out, err := node.Execute(ctx, items)
	if err != nil {
		log.Fatal().Err(err).Msg("upscale run failed")
	}

	writer, err := file.NewWriter(viper.GetString("run.output_dir"), store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing output writer")
	}

	if err := writer.Write(out); err != nil {
		log.Fatal().Err(err).Msg("failed writing outputs")
	}

	log.Info().Int("items", len(out)).Msg("done")
}

// loadItems builds one input item per [[items]] config entry, packing the
// image file under the entry's configured binary property.
func loadItems(store *host.Base64Store) ([]domain.InputItem, []map[string]any, error) {
	entries := cast.ToSlice(viper.Get("items"))
	if len(entries) == 0 {
		return nil, nil, domain.ErrNoInputItems
	}

	items := make([]domain.InputItem, 0, len(entries))
	params := make([]map[string]any, 0, len(entries))

	for _, entry := range entries {
		m := cast.ToStringMap(entry)

		path := cast.ToString(m["image"])
		if path == "" {
			return nil, nil, domain.ErrMissingImage
		}

		p := cast.ToStringMap(m["params"])

		property := domain.DefaultBinaryProperty
		if v, ok := p["binaryPropertyName"]; ok {
			property = cast.ToString(v)
		}

		image, err := file.LoadImage(path)
		if err != nil {
			return nil, nil, err
		}

		items = append(items, domain.InputItem{
			Binary: map[string]domain.BinaryAttachment{
				property: store.Pack(image.Data, image.FileName, image.MimeType),
			},
		})
		params = append(params, p)
	}

	return items, params, nil
}
