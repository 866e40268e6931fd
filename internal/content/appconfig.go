package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const configFileName = "config.json"

// AppConfig is the optional quiz configuration document. Every field has a
// default, and resolution never fails: a missing or malformed document just
// yields the defaults.
type AppConfig struct {
	ImagesBase    string `json:"imagesBase"`
	QuestionsFile string `json:"questionsFile"`
}

// DefaultAppConfig returns the configuration used when no config document is
// published.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ImagesBase:    "/images",
		QuestionsFile: DefaultQuestionsFile,
	}
}

// ResolveAppConfig fetches the config document once and merges it over the
// defaults. Any failure (network, non-2xx, bad JSON) silently yields the
// defaults; config problems must never stop a quiz from starting.
func (l *Loader) ResolveAppConfig(ctx context.Context) AppConfig {
	cfg := DefaultAppConfig()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+configFileName, nil)
	if err != nil {
		return cfg
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return cfg
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return cfg
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cfg
	}

	var doc AppConfig
	if err := json.Unmarshal(body, &doc); err != nil {
		return cfg
	}

	if doc.ImagesBase != "" {
		cfg.ImagesBase = doc.ImagesBase
	}
	if doc.QuestionsFile != "" {
		cfg.QuestionsFile = doc.QuestionsFile
	}
	return cfg
}
