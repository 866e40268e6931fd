package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"birdquiz/internal/quiz"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// consoleObserver renders session events as styled terminal output. The
// mutex keeps countdown ticks (which arrive on the timer goroutine) from
// interleaving with question output.
type consoleObserver struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out}
}

func (c *consoleObserver) QuizStarted(total int, mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	header := fmt.Sprintf("Bird quiz: %d questions (%s mode)", total, mode)
	fmt.Fprintln(c.out, titleStyle.Render(header))
}

func (c *consoleObserver) QuestionShown(view quiz.QuestionView) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "%s %s\n", faintStyle.Render(fmt.Sprintf("[%d/%d]", view.Index+1, view.Total)), titleStyle.Render(view.Prompt))
	if view.ImageURL != "" {
		fmt.Fprintln(c.out, faintStyle.Render("image: "+view.ImageURL))
	}
	for idx, choice := range view.Choices {
		fmt.Fprintf(c.out, "  %d) %s\n", idx+1, choice)
	}
	fmt.Fprintf(c.out, "Your answer (1-%d): ", len(view.Choices))
}

func (c *consoleObserver) TimerTick(tick quiz.TickInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := fmt.Sprintf("Time left: %2ds", tick.Remaining)
	switch tick.Urgency {
	case quiz.UrgencyCritical:
		line = criticalStyle.Render(line)
	case quiz.UrgencyWarning:
		line = warningStyle.Render(line)
	default:
		line = faintStyle.Render(line)
	}
	fmt.Fprintf(c.out, "\r%s ", line)
}

func (c *consoleObserver) QuestionAnswered(feedback quiz.Feedback) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out)
	switch {
	case feedback.Correct:
		fmt.Fprintln(c.out, correctStyle.Render("Correct!"))
	case feedback.TimedOut:
		fmt.Fprintf(c.out, "%s The correct answer was %s.\n",
			wrongStyle.Render("Time is up."), titleStyle.Render(feedback.CorrectAnswer))
	default:
		fmt.Fprintf(c.out, "%s The correct answer was %s.\n",
			wrongStyle.Render("Incorrect."), titleStyle.Render(feedback.CorrectAnswer))
	}
	if feedback.InfoText != "" {
		fmt.Fprintln(c.out, feedback.InfoText)
	}
	if feedback.InfoURL != "" {
		fmt.Fprintln(c.out, faintStyle.Render("More info: "+feedback.InfoURL))
	}
}

func (c *consoleObserver) QuizFinished(summary quiz.Summary, review []quiz.ReviewRow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render(fmt.Sprintf("You scored %d / %d (%d%%)", summary.Score, summary.Total, summary.Percent)))
	fmt.Fprintln(c.out, summary.Message)

	if len(review) == 0 {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render("Review"))
	for _, row := range review {
		marker := correctStyle.Render("+")
		if !row.IsCorrect {
			marker = wrongStyle.Render("x")
		}
		selected := row.Selected
		if selected == "" {
			selected = faintStyle.Render("(no answer)")
		}
		fmt.Fprintf(c.out, "%s Q%d: %s\n", marker, row.Position, row.Question)
		fmt.Fprintf(c.out, "    your answer: %s\n", selected)
		if !row.IsCorrect {
			fmt.Fprintf(c.out, "    correct answer: %s\n", row.Correct)
		}
		if row.InfoURL != "" {
			fmt.Fprintln(c.out, faintStyle.Render("    more info: "+row.InfoURL))
		}
	}
}

func (c *consoleObserver) LoadFailed(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, wrongStyle.Render(message))
}
