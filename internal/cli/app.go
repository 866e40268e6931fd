package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"birdquiz/internal/content"
	"birdquiz/internal/quiz"
)

const maxAttempts = 3

// Options configure one terminal quiz run.
type Options struct {
	Mode       string // "leisure" or "timed"
	File       string // question file; empty means the configured default
	ContentURL string // remote content base URL; takes precedence over ContentDir
	ContentDir string // local content directory
	Fallback   string // question file tried once when the primary fails

	// Countdown tuning; zero means the session defaults. Tests compress
	// timer time through these.
	questionSeconds int
	tickInterval    time.Duration
}

// Run plays one full quiz session on the terminal: load, question loop,
// results, review. The session machine drives all output through the console
// observer; Run only collects input.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	loader, imagesBase, file := buildLoader(ctx, opts)

	observer := newConsoleObserver(out)
	session := quiz.NewSession(loader, quiz.SessionOptions{
		Observer:        observer,
		ImagesBase:      imagesBase,
		QuestionSeconds: opts.questionSeconds,
		TickInterval:    opts.tickInterval,
	})

	if err := session.Start(ctx, opts.Mode, file); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	for session.State() == quiz.StateInProgress {
		view, ok := session.Current()
		if !ok {
			break
		}

		choice, answered := readChoice(reader, out, view.Choices)
		if !answered {
			choice = ""
		}
		stale := false
		if _, err := session.Submit(choice); err != nil {
			if !errors.Is(err, quiz.ErrNotAwaiting) {
				return err
			}
			// The countdown beat the user to it; feedback is already printed.
			stale = true
		}

		if stale {
			// The line the user was typing when time ran out doubles as the
			// acknowledgment; asking for another Enter would swallow input
			// meant for the next question.
			fmt.Fprintln(out)
		} else {
			fmt.Fprint(out, "\nPress Enter for the next question... ")
			if _, err := reader.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			fmt.Fprintln(out)
		}

		if err := session.Advance(); err != nil {
			return err
		}
	}

	return nil
}

func buildLoader(ctx context.Context, opts Options) (quiz.QuestionsLoader, string, string) {
	appCfg := content.DefaultAppConfig()
	file := opts.File

	if opts.ContentURL != "" {
		remote := content.NewLoader(opts.ContentURL, opts.Fallback, nil)
		appCfg = remote.ResolveAppConfig(ctx)
		if file == "" {
			file = appCfg.QuestionsFile
		}
		return remote.LoadQuestions, appCfg.ImagesBase, file
	}

	dir := opts.ContentDir
	if dir == "" {
		dir = "."
	}
	if file == "" {
		file = appCfg.QuestionsFile
	}
	loader := func(_ context.Context, name string) ([]content.QuestionRecord, error) {
		return content.LoadFile(dir, name)
	}
	return loader, appCfg.ImagesBase, file
}

// readChoice prompts until a valid 1-based choice number arrives, giving up
// after a few bad inputs so the question is scored as skipped.
func readChoice(reader *bufio.Reader, out io.Writer, choices []string) (string, bool) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", false
		}

		line = strings.TrimSpace(line)
		index, convErr := strconv.Atoi(line)
		if convErr == nil && index >= 1 && index <= len(choices) {
			return choices[index-1], true
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "Invalid input. Please enter a number 1-%d: ", len(choices))
		}
	}
	return "", false
}
