package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"birdquiz/internal/content"
)

// Config holds process configuration for the server and CLI binaries. Quiz
// content itself is configured by the content.AppConfig document; this is
// only the plumbing around it.
type Config struct {
	Addr          string `mapstructure:"addr"`           // HTTP listen address
	ContentDir    string `mapstructure:"content_dir"`    // static quiz content served and loaded from disk
	ContentURL    string `mapstructure:"content_url"`    // remote content base; overrides content_dir for loading
	QuestionsFile string `mapstructure:"questions_file"` // default question file name
	FallbackFile  string `mapstructure:"fallback_file"`  // question file tried once when the primary fails
	ImagesBase    string `mapstructure:"images_base"`    // base path images resolve under
	HistoryDB     string `mapstructure:"history_db"`     // SQLite path for finished results; empty disables history
}

// Load reads configuration from an optional config.yaml and environment
// variables prefixed with BIRDQUIZ_.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	defaults := content.DefaultAppConfig()
	v.SetDefault("addr", ":8080")
	v.SetDefault("content_dir", "web")
	v.SetDefault("content_url", "")
	v.SetDefault("questions_file", defaults.QuestionsFile)
	v.SetDefault("fallback_file", defaults.QuestionsFile)
	v.SetDefault("images_base", defaults.ImagesBase)
	v.SetDefault("history_db", "")

	v.SetEnvPrefix("birdquiz")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
