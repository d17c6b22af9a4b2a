package main

import (
	"os"

	"github.com/rs/zerolog"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

// withClient loads configuration, builds a client, and hands both to fn,
// closing the client afterwards.
func withClient(fn func(cfg *Config, client *reliefhub.Client) error) error {
	cfg, err := Load(globalConfigPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	if os.Getenv("RELIEFHUB_VERBOSE") == "true" {
		logger = logger.Level(zerolog.DebugLevel)
	}

	client := reliefhub.New(cfg.BaseURL, append(cfg.Options(), reliefhub.WithLogger(logger))...)
	defer client.Close()

	return fn(cfg, client)
}
