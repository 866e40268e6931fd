package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"birdquiz/internal/history"
	"birdquiz/internal/quiz"
)

const defaultRecentResultsLimit = 10

func (a *API) HandleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configResponse{
		ImagesBase:    a.appCfg.ImagesBase,
		QuestionsFile: a.appCfg.QuestionsFile,
	})
}

func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	file := strings.TrimSpace(r.URL.Query().Get("file"))
	if file == "" {
		file = a.appCfg.QuestionsFile
	}

	records, err := a.loader(r.Context(), file)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	// Quiz content changes between sessions; clients must never replay a
	// cached list against fresher answers.
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, questionsResponse{
		File:          file,
		QuestionCount: len(records),
		Questions:     records,
	})
}

func (a *API) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	file := strings.TrimSpace(req.File)
	if file == "" {
		file = a.appCfg.QuestionsFile
	}

	session := quiz.NewSession(a.loader, quiz.SessionOptions{
		ImagesBase: a.appCfg.ImagesBase,
	})
	if err := session.Start(r.Context(), req.Mode, file); err != nil {
		writeLoadError(w, err)
		return
	}

	managed := a.sessions.create(session)
	resp := createSessionResponse{
		SessionID: managed.id,
		State:     session.State(),
		Mode:      session.Mode(),
	}
	if view, ok := session.Current(); ok {
		resp.Question = &view
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (a *API) HandleSessionState(w http.ResponseWriter, r *http.Request) {
	managed, ok := a.lookupSession(w, r)
	if !ok {
		return
	}
	session := managed.session

	resp := sessionStateResponse{
		SessionID: managed.id,
		State:     session.State(),
		Mode:      session.Mode(),
		Score:     session.Score(),
	}
	if view, ok := session.Current(); ok {
		resp.Question = &view
	}
	if feedback, ok := session.LastFeedback(); ok && resp.State == quiz.StateInProgress {
		resp.Feedback = &feedback
	}
	if summary, err := session.Summary(); err == nil {
		resp.Summary = &summary
	}
	resp.Error = session.ErrorMessage()

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	managed, ok := a.lookupSession(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	feedback, err := managed.session.Submit(req.Choice)
	if err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{
		SessionID: managed.id,
		Feedback:  feedback,
		Score:     managed.session.Score(),
	})
}

func (a *API) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	managed, ok := a.lookupSession(w, r)
	if !ok {
		return
	}
	session := managed.session

	if err := session.Advance(); err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}

	resp := advanceResponse{
		SessionID: managed.id,
		State:     session.State(),
	}
	if view, ok := session.Current(); ok {
		resp.Question = &view
	}
	if summary, err := session.Summary(); err == nil {
		resp.Summary = &summary
		resp.Review = session.Review()
		a.saveResult(r.Context(), managed, summary)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) HandleReview(w http.ResponseWriter, r *http.Request) {
	managed, ok := a.lookupSession(w, r)
	if !ok {
		return
	}

	summary, err := managed.session.Summary()
	if err != nil {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{
		SessionID: managed.id,
		Summary:   summary,
		Review:    managed.session.Review(),
	})
}

func (a *API) HandleRecentResults(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", defaultRecentResultsLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results := []history.SessionResult{}
	if a.history != nil {
		results, err = a.history.RecentResults(r.Context(), limit)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
			return
		}
	}
	writeJSON(w, http.StatusOK, recentResultsResponse{Results: results})
}

func (a *API) lookupSession(w http.ResponseWriter, r *http.Request) (*managedSession, bool) {
	id := chi.URLParam(r, "sessionID")
	managed, ok := a.sessions.get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	return managed, true
}

func (a *API) saveResult(ctx context.Context, managed *managedSession, summary quiz.Summary) {
	if a.history == nil || !a.sessions.markSaved(managed.id) {
		return
	}

	err := a.history.SaveResult(ctx, history.SessionResult{
		ID:         managed.id,
		Mode:       managed.session.Mode(),
		Score:      summary.Score,
		Total:      summary.Total,
		Percent:    summary.Percent,
		Message:    summary.Message,
		FinishedAt: time.Now().UTC(),
		Answers:    managed.session.Answers(),
	})
	if err != nil {
		// History is best effort; the quiz result was already served.
		log.Printf("save session result %s: %v", managed.id, err)
	}
}
