package quiz

// Observer receives presentation events from a Session. The session machine
// has no dependency on any rendering surface; front ends (terminal, HTTP)
// implement Observer and draw however they like. Callbacks are never invoked
// with the session lock held, so an observer may call back into the session.
type Observer interface {
	// QuizStarted fires once per successful Start, before the first question.
	QuizStarted(total int, mode string)
	// QuestionShown fires each time a question becomes the current one.
	QuestionShown(view QuestionView)
	// TimerTick fires once per countdown tick in timed mode.
	TimerTick(tick TickInfo)
	// QuestionAnswered fires after a submission, manual or by timer expiry.
	QuestionAnswered(feedback Feedback)
	// QuizFinished fires when the last question is advanced past.
	QuizFinished(summary Summary, review []ReviewRow)
	// LoadFailed fires when Start cannot obtain a question list.
	LoadFailed(message string)
}

// NopObserver ignores every event. Embed it to implement only the callbacks
// a front end cares about.
type NopObserver struct{}

func (NopObserver) QuizStarted(int, string)          {}
func (NopObserver) QuestionShown(QuestionView)       {}
func (NopObserver) TimerTick(TickInfo)               {}
func (NopObserver) QuestionAnswered(Feedback)        {}
func (NopObserver) QuizFinished(Summary, []ReviewRow) {}
func (NopObserver) LoadFailed(string)                {}
