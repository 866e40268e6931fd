package httpapi

import (
	"birdquiz/internal/content"
	"birdquiz/internal/history"
	"birdquiz/internal/quiz"
)

// API hosts server-side quiz sessions and serves quiz content metadata.
// Thin clients create a session, then answer and advance over JSON instead
// of running the state machine locally.
type API struct {
	loader   quiz.QuestionsLoader
	appCfg   content.AppConfig
	sessions *sessionManager
	history  *history.Store
}

// NewAPI wires the handlers. history may be nil, which disables the recent
// results endpoint's storage (it then serves an empty list).
func NewAPI(loader quiz.QuestionsLoader, appCfg content.AppConfig, store *history.Store) *API {
	if appCfg.ImagesBase == "" || appCfg.QuestionsFile == "" {
		defaults := content.DefaultAppConfig()
		if appCfg.ImagesBase == "" {
			appCfg.ImagesBase = defaults.ImagesBase
		}
		if appCfg.QuestionsFile == "" {
			appCfg.QuestionsFile = defaults.QuestionsFile
		}
	}
	return &API{
		loader:   loader,
		appCfg:   appCfg,
		sessions: newSessionManager(),
		history:  store,
	}
}
