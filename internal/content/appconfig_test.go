package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveAppConfigMergesOverDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/config.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imagesBase": "/static/birds"}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, "", server.Client())
	cfg := loader.ResolveAppConfig(context.Background())
	if cfg.ImagesBase != "/static/birds" {
		t.Fatalf("imagesBase = %q, want /static/birds", cfg.ImagesBase)
	}
	if cfg.QuestionsFile != DefaultQuestionsFile {
		t.Fatalf("questionsFile = %q, want default for a partial document", cfg.QuestionsFile)
	}
}

func TestResolveAppConfigDefaultsOnMissingDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := NewLoader(server.URL, "", server.Client())
	if cfg := loader.ResolveAppConfig(context.Background()); cfg != DefaultAppConfig() {
		t.Fatalf("config = %+v, want defaults on 404", cfg)
	}
}

func TestResolveAppConfigDefaultsOnMalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imagesBase": `))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, "", server.Client())
	if cfg := loader.ResolveAppConfig(context.Background()); cfg != DefaultAppConfig() {
		t.Fatalf("config = %+v, want defaults on parse failure", cfg)
	}
}

func TestResolveAppConfigDefaultsOnUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	loader := NewLoader(server.URL, "", nil)
	if cfg := loader.ResolveAppConfig(context.Background()); cfg != DefaultAppConfig() {
		t.Fatalf("config = %+v, want defaults on network failure", cfg)
	}
}
