package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"birdquiz/internal/content"
)

const (
	ModeLeisure = "leisure"
	ModeTimed   = "timed"

	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateFinished   = "finished"
	StateError      = "error"

	// DefaultQuestionSeconds is the per-question countdown in timed mode.
	DefaultQuestionSeconds = 30

	// LoadFailedMessage is the user-visible text shown when a question list
	// cannot be obtained.
	LoadFailedMessage = "Failed to load quiz questions."
)

var (
	ErrNotAwaiting = errors.New("no answer is expected right now")
	ErrNotAnswered = errors.New("current question has not been answered yet")
	ErrNotFinished = errors.New("quiz is not finished")
	// ErrSuperseded is returned from a Start whose question load finished
	// after a newer Start had already taken over the session.
	ErrSuperseded = errors.New("start superseded by a newer start")
)

// QuestionsLoader obtains the validated question list for a named file.
type QuestionsLoader func(ctx context.Context, file string) ([]content.QuestionRecord, error)

// AnswerLogEntry records the outcome for one distinct prompt. Re-answering
// the same prompt overwrites the entry in place instead of appending.
type AnswerLogEntry struct {
	Question  string `json:"question"`
	Selected  string `json:"selected"`
	Correct   string `json:"correct"`
	IsCorrect bool   `json:"is_correct"`
	Image     string `json:"image,omitempty"`
	InfoText  string `json:"info_text,omitempty"`
	InfoURL   string `json:"info_url,omitempty"`
}

// QuestionView is the render-ready snapshot of the current question.
type QuestionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Prompt   string   `json:"question"`
	ImageURL string   `json:"image,omitempty"`
	Choices  []string `json:"choices"`
	Timed    bool     `json:"timed"`
	Answered bool     `json:"answered"`
}

// Feedback describes the outcome of a submission.
type Feedback struct {
	Correct       bool   `json:"correct"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correct_answer"`
	InfoText      string `json:"info_text,omitempty"`
	InfoURL       string `json:"info_url,omitempty"`
	TimedOut      bool   `json:"timed_out"`
}

// SessionOptions tune a Session. The zero value is usable: no observer, the
// default images base, a 30-second timed countdown with one-second ticks.
type SessionOptions struct {
	Observer        Observer
	ImagesBase      string
	QuestionSeconds int
	// TickInterval compresses timer time in tests. Production code leaves it
	// zero for one-second ticks.
	TickInterval time.Duration
}

// Session is the quiz state machine. All mutation goes through Start,
// Submit, and Advance; accessors return snapshots. A Session is safe for
// concurrent use, which the timed mode requires: timer expiry arrives on a
// different goroutine than user submissions.
type Session struct {
	mu sync.Mutex

	loader          QuestionsLoader
	observer        Observer
	imagesBase      string
	questionSeconds int
	tickInterval    time.Duration

	state     string
	mode      string
	questions []content.QuestionRecord
	current   int
	answered  bool
	score     int
	entries   []AnswerLogEntry
	entryIdx  map[string]int
	feedback  *Feedback
	errMsg    string

	timer *countdown
	// epoch identifies one Start's ownership of the session. A question load
	// or timer expiry carrying a stale epoch is discarded.
	epoch uint64
}

func NewSession(loader QuestionsLoader, opts SessionOptions) *Session {
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	imagesBase := opts.ImagesBase
	if imagesBase == "" {
		imagesBase = content.DefaultAppConfig().ImagesBase
	}
	questionSeconds := opts.QuestionSeconds
	if questionSeconds <= 0 {
		questionSeconds = DefaultQuestionSeconds
	}
	return &Session{
		loader:          loader,
		observer:        observer,
		imagesBase:      imagesBase,
		questionSeconds: questionSeconds,
		tickInterval:    opts.TickInterval,
		state:           StateNotStarted,
		entryIdx:        make(map[string]int),
	}
}

// Start resets the session and loads the question list for the given mode
// and file. A Start issued while a previous load is still in flight wins:
// the older load's result is discarded when it finally arrives and the older
// call returns ErrSuperseded. On load failure the session enters the error
// state with a static user-visible message and stays there until the next
// Start.
func (s *Session) Start(ctx context.Context, mode, file string) error {
	if mode != ModeTimed {
		mode = ModeLeisure
	}

	s.mu.Lock()
	s.stopTimerLocked()
	s.epoch++
	epoch := s.epoch
	s.state = StateNotStarted
	s.mode = mode
	s.questions = nil
	s.current = 0
	s.answered = false
	s.score = 0
	s.entries = nil
	s.entryIdx = make(map[string]int)
	s.feedback = nil
	s.errMsg = ""
	loader := s.loader
	s.mu.Unlock()

	records, err := loader(ctx, file)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return ErrSuperseded
	}
	if err == nil && len(records) == 0 {
		// The concrete loaders reject empty lists themselves, but the session
		// must not trust that: showing a question requires one to exist.
		err = content.ErrNoQuestions
	}
	if err != nil {
		s.state = StateError
		s.errMsg = LoadFailedMessage
		s.mu.Unlock()
		s.observer.LoadFailed(LoadFailedMessage)
		return err
	}
	s.questions = records
	s.state = StateInProgress
	view := s.showQuestionLocked(epoch)
	total := len(records)
	s.mu.Unlock()

	s.observer.QuizStarted(total, mode)
	s.observer.QuestionShown(view)
	return nil
}

// Submit records the user's choice for the current question. An empty
// selection marks a timeout or skip and is never correct, since validation
// guarantees answers are non-empty. Submit is terminal per question render:
// once answered, further submissions fail until Advance.
func (s *Session) Submit(selected string) (Feedback, error) {
	s.mu.Lock()
	if s.state != StateInProgress || s.answered {
		s.mu.Unlock()
		return Feedback{}, ErrNotAwaiting
	}
	feedback := s.submitLocked(selected, false)
	s.mu.Unlock()

	s.observer.QuestionAnswered(feedback)
	return feedback, nil
}

// LastFeedback returns the outcome of the current question's submission, or
// false while the question is still awaiting an answer. Polling front ends
// use this to pick up timer-driven submissions they did not issue
// themselves.
func (s *Session) LastFeedback() (Feedback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedback == nil {
		return Feedback{}, false
	}
	return *s.feedback, true
}

// Advance moves to the next question, or finishes the quiz after the last
// one. Only valid once the current question has been answered.
func (s *Session) Advance() error {
	s.mu.Lock()
	if s.state != StateInProgress || !s.answered {
		s.mu.Unlock()
		return ErrNotAnswered
	}

	s.current++
	if s.current < len(s.questions) {
		s.answered = false
		s.feedback = nil
		view := s.showQuestionLocked(s.epoch)
		s.mu.Unlock()
		s.observer.QuestionShown(view)
		return nil
	}

	s.state = StateFinished
	summary := s.summaryLocked()
	review := BuildReview(s.entries)
	s.mu.Unlock()

	s.observer.QuizFinished(summary, review)
	return nil
}

// State returns the lifecycle state: not_started, in_progress, finished, or
// error.
func (s *Session) State() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Mode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ErrorMessage returns the user-visible load failure text, or "" when the
// session is not in the error state.
func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Current returns the view of the question being presented, or false when
// no question is current.
func (s *Session) Current() (QuestionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.current >= len(s.questions) {
		return QuestionView{}, false
	}
	return s.viewLocked(), true
}

// Summary reports the final score once the quiz is finished.
func (s *Session) Summary() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFinished {
		return Summary{}, ErrNotFinished
	}
	return s.summaryLocked(), nil
}

// Review returns the answer log projected for display, in the order answers
// were first recorded.
func (s *Session) Review() []ReviewRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildReview(s.entries)
}

// Answers returns a copy of the raw answer log.
func (s *Session) Answers() []AnswerLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AnswerLogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// showQuestionLocked prepares the current question's view and, in timed
// mode, arms a fresh countdown bound to this epoch and index.
func (s *Session) showQuestionLocked(epoch uint64) QuestionView {
	s.stopTimerLocked()
	view := s.viewLocked()
	if s.mode == ModeTimed {
		index := s.current
		s.timer = newCountdown(s.questionSeconds, s.tickInterval,
			s.observer.TimerTick,
			func() { s.expire(epoch, index) },
		)
	}
	return view
}

func (s *Session) viewLocked() QuestionView {
	question := s.questions[s.current]
	choices := make([]string, len(question.Choices))
	copy(choices, question.Choices)
	return QuestionView{
		Index:    s.current,
		Total:    len(s.questions),
		Prompt:   question.Prompt,
		ImageURL: content.ResolveImageURL(question.Image, s.imagesBase),
		Choices:  choices,
		Timed:    s.mode == ModeTimed,
		Answered: s.answered,
	}
}

// expire is the countdown's expiry callback: it submits a blank answer on
// behalf of the user. Anything that no longer matches the countdown's
// binding (newer start, different question, already answered) makes the fire
// a no-op.
func (s *Session) expire(epoch uint64, index int) {
	s.mu.Lock()
	if s.epoch != epoch || s.state != StateInProgress || s.current != index || s.answered {
		s.mu.Unlock()
		return
	}
	feedback := s.submitLocked("", true)
	s.mu.Unlock()

	s.observer.QuestionAnswered(feedback)
}

func (s *Session) submitLocked(selected string, timedOut bool) Feedback {
	s.stopTimerLocked()

	question := s.questions[s.current]
	isCorrect := selected == question.Answer
	infoText, infoURL := content.ClassifyInfo(question)

	entry := AnswerLogEntry{
		Question:  question.Prompt,
		Selected:  selected,
		Correct:   question.Answer,
		IsCorrect: isCorrect,
		Image:     content.ResolveImageURL(question.Image, s.imagesBase),
		InfoText:  infoText,
		InfoURL:   infoURL,
	}

	if idx, ok := s.entryIdx[question.Prompt]; ok {
		// Overwrite in place; undo the previous entry's point first so a
		// prompt can never be counted twice.
		if s.entries[idx].IsCorrect {
			s.score--
		}
		s.entries[idx] = entry
	} else {
		s.entryIdx[question.Prompt] = len(s.entries)
		s.entries = append(s.entries, entry)
	}
	if isCorrect {
		s.score++
	}

	s.answered = true
	feedback := Feedback{
		Correct:       isCorrect,
		Selected:      selected,
		CorrectAnswer: question.Answer,
		InfoText:      infoText,
		InfoURL:       infoURL,
		TimedOut:      timedOut,
	}
	s.feedback = &feedback
	return feedback
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.stop()
		s.timer = nil
	}
}

func (s *Session) summaryLocked() Summary {
	return Summarize(s.score, len(s.questions))
}
