package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"birdquiz/internal/content"
	"birdquiz/internal/quiz"
)

func testLoader(records []content.QuestionRecord, err error) quiz.QuestionsLoader {
	return func(context.Context, string) ([]content.QuestionRecord, error) {
		if err != nil {
			return nil, err
		}
		return records, nil
	}
}

func apiRecords() []content.QuestionRecord {
	return []content.QuestionRecord{
		{Prompt: "Which bird?", Choices: []string{"Robin", "Jay"}, Answer: "Robin", Image: "robin.jpg"},
		{Prompt: "Which raptor?", Choices: []string{"Kestrel", "Vulture"}, Answer: "Kestrel"},
	}
}

func newTestRouter(loader quiz.QuestionsLoader) http.Handler {
	api := NewAPI(loader, content.DefaultAppConfig(), nil)
	return NewRouter(api, "")
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func TestHandleConfig(t *testing.T) {
	router := newTestRouter(testLoader(apiRecords(), nil))

	var cfg configResponse
	rec := doJSON(t, router, http.MethodGet, "/api/config", nil, &cfg)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cfg.ImagesBase != "/images" || cfg.QuestionsFile != "questions.json" {
		t.Fatalf("config = %+v, want defaults", cfg)
	}
}

func TestHandleQuestionsDisablesCaching(t *testing.T) {
	router := newTestRouter(testLoader(apiRecords(), nil))

	var resp questionsResponse
	rec := doJSON(t, router, http.MethodGet, "/api/questions", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", got)
	}
	if resp.QuestionCount != 2 || len(resp.Questions) != 2 {
		t.Fatalf("response = %+v, want both questions", resp)
	}
}

func TestHandleQuestionsLoadFailure(t *testing.T) {
	router := newTestRouter(testLoader(nil, &content.LoadError{Resource: "questions.json", Reason: "unreachable"}))

	rec := doJSON(t, router, http.MethodGet, "/api/questions", nil, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error != quiz.LoadFailedMessage {
		t.Fatalf("error = %q, want the static failure message", resp.Error)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(testLoader(apiRecords(), nil))

	var created createSessionResponse
	rec := doJSON(t, router, http.MethodPost, "/api/sessions", createSessionRequest{Mode: quiz.ModeLeisure}, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if created.SessionID == "" || created.Question == nil {
		t.Fatalf("create response = %+v, want session id and first question", created)
	}
	if created.Question.Prompt != "Which bird?" {
		t.Fatalf("first question = %q", created.Question.Prompt)
	}
	if created.Question.ImageURL != "/images/robin.jpg" {
		t.Fatalf("first question image = %q, want resolved URL", created.Question.ImageURL)
	}

	base := "/api/sessions/" + created.SessionID

	// Correct answer.
	var answered answerResponse
	rec = doJSON(t, router, http.MethodPost, base+"/answer", answerRequest{Choice: "Robin"}, &answered)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status = %d: %s", rec.Code, rec.Body.String())
	}
	if !answered.Feedback.Correct || answered.Score != 1 {
		t.Fatalf("answer response = %+v, want correct with score 1", answered)
	}

	// Second submission for the same render conflicts.
	rec = doJSON(t, router, http.MethodPost, base+"/answer", answerRequest{Choice: "Jay"}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("double answer status = %d, want 409", rec.Code)
	}

	// Advance to question two.
	var advanced advanceResponse
	rec = doJSON(t, router, http.MethodPost, base+"/next", nil, &advanced)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance status = %d: %s", rec.Code, rec.Body.String())
	}
	if advanced.State != quiz.StateInProgress || advanced.Question == nil || advanced.Question.Index != 1 {
		t.Fatalf("advance response = %+v, want question 1", advanced)
	}

	// Wrong answer, then finish.
	rec = doJSON(t, router, http.MethodPost, base+"/answer", answerRequest{Choice: "Vulture"}, &answered)
	if rec.Code != http.StatusOK {
		t.Fatalf("second answer status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, base+"/next", nil, &advanced)
	if rec.Code != http.StatusOK {
		t.Fatalf("final advance status = %d", rec.Code)
	}
	if advanced.State != quiz.StateFinished || advanced.Summary == nil {
		t.Fatalf("final advance = %+v, want finished with summary", advanced)
	}
	if advanced.Summary.Score != 1 || advanced.Summary.Total != 2 || advanced.Summary.Percent != 50 {
		t.Fatalf("summary = %+v, want 1/2 at 50%%", advanced.Summary)
	}
	if len(advanced.Review) != 2 {
		t.Fatalf("review rows = %d, want 2", len(advanced.Review))
	}

	// Review endpoint agrees.
	var review reviewResponse
	rec = doJSON(t, router, http.MethodGet, base+"/review", nil, &review)
	if rec.Code != http.StatusOK {
		t.Fatalf("review status = %d", rec.Code)
	}
	if len(review.Review) != 2 || review.Summary.Score != 1 {
		t.Fatalf("review response = %+v", review)
	}
}

func TestAdvanceBeforeAnswerConflicts(t *testing.T) {
	router := newTestRouter(testLoader(apiRecords(), nil))

	var created createSessionResponse
	doJSON(t, router, http.MethodPost, "/api/sessions", createSessionRequest{Mode: quiz.ModeLeisure}, &created)

	rec := doJSON(t, router, http.MethodPost, "/api/sessions/"+created.SessionID+"/next", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("advance before answer status = %d, want 409", rec.Code)
	}
}

func TestCreateSessionLoadFailure(t *testing.T) {
	router := newTestRouter(testLoader(nil, content.ErrNoQuestions))

	rec := doJSON(t, router, http.MethodPost, "/api/sessions", createSessionRequest{Mode: quiz.ModeLeisure}, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Error != quiz.LoadFailedMessage {
		t.Fatalf("error = %q, want %q", resp.Error, quiz.LoadFailedMessage)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	router := newTestRouter(testLoader(apiRecords(), nil))

	rec := doJSON(t, router, http.MethodGet, "/api/sessions/does-not-exist", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRecentResultsWithoutHistory(t *testing.T) {
	router := newTestRouter(testLoader(apiRecords(), nil))

	var resp recentResultsResponse
	rec := doJSON(t, router, http.MethodGet, "/api/results/recent", nil, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("results = %+v, want empty without a history store", resp.Results)
	}
}

func TestWriteLoadErrorDistinguishesInternalFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	writeLoadError(rec, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for unknown errors", rec.Code)
	}
}
