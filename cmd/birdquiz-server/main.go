package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"birdquiz/internal/config"
	"birdquiz/internal/content"
	"birdquiz/internal/history"
	"birdquiz/internal/httpapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	flag.Parse()

	var store *history.Store
	if cfg.HistoryDB != "" {
		store, err = history.NewStore(cfg.HistoryDB)
		if err != nil {
			log.Fatalf("open history store: %v", err)
		}
		defer store.Close()
	}

	loader := buildLoader(cfg)
	api := httpapi.NewAPI(loader, content.AppConfig{
		ImagesBase:    cfg.ImagesBase,
		QuestionsFile: cfg.QuestionsFile,
	}, store)

	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(api, cfg.ContentDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("birdquiz-server listening on %s", *addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

// buildLoader picks where question files come from: an upstream content URL
// when configured, otherwise the local content directory the server itself
// serves.
func buildLoader(cfg *config.Config) func(ctx context.Context, file string) ([]content.QuestionRecord, error) {
	if cfg.ContentURL != "" {
		remote := content.NewLoader(cfg.ContentURL, cfg.FallbackFile, nil)
		return remote.LoadQuestions
	}
	dir := cfg.ContentDir
	return func(_ context.Context, file string) ([]content.QuestionRecord, error) {
		return content.LoadFile(dir, file)
	}
}
