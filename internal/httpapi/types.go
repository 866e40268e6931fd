package httpapi

import (
	"birdquiz/internal/content"
	"birdquiz/internal/history"
	"birdquiz/internal/quiz"
)

type configResponse struct {
	ImagesBase    string `json:"imagesBase"`
	QuestionsFile string `json:"questionsFile"`
}

type questionsResponse struct {
	File          string                   `json:"file"`
	QuestionCount int                      `json:"question_count"`
	Questions     []content.QuestionRecord `json:"questions"`
}

type createSessionRequest struct {
	Mode string `json:"mode"`
	File string `json:"file,omitempty"`
}

type createSessionResponse struct {
	SessionID string            `json:"session_id"`
	State     string            `json:"state"`
	Mode      string            `json:"mode"`
	Question  *quiz.QuestionView `json:"question,omitempty"`
}

type sessionStateResponse struct {
	SessionID string             `json:"session_id"`
	State     string             `json:"state"`
	Mode      string             `json:"mode"`
	Score     int                `json:"score"`
	Question  *quiz.QuestionView `json:"question,omitempty"`
	Feedback  *quiz.Feedback     `json:"feedback,omitempty"`
	Summary   *quiz.Summary      `json:"summary,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type answerRequest struct {
	Choice string `json:"choice"`
}

type answerResponse struct {
	SessionID string        `json:"session_id"`
	Feedback  quiz.Feedback `json:"feedback"`
	Score     int           `json:"score"`
}

type advanceResponse struct {
	SessionID string             `json:"session_id"`
	State     string             `json:"state"`
	Question  *quiz.QuestionView `json:"question,omitempty"`
	Summary   *quiz.Summary      `json:"summary,omitempty"`
	Review    []quiz.ReviewRow   `json:"review,omitempty"`
}

type reviewResponse struct {
	SessionID string           `json:"session_id"`
	Summary   quiz.Summary     `json:"summary"`
	Review    []quiz.ReviewRow `json:"review"`
}

type recentResultsResponse struct {
	Results []history.SessionResult `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
