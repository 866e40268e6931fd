package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultQuestionsFile is used when neither the caller nor the remote
	// config names a question file.
	DefaultQuestionsFile = "questions.json"

	bodySampleLimit = 120
)

// ErrNoQuestions is returned when a question file parses but contains no
// playable records after validation.
var ErrNoQuestions = errors.New("no valid questions in quiz file")

// LoadError describes a failed question fetch: HTTP failure, unexpected
// content type, or a body that does not decode as a question list. Sample
// holds a short prefix of the offending body for diagnostics.
type LoadError struct {
	Resource string
	Status   int
	Reason   string
	Sample   string
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s: %s", e.Resource, e.Reason)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Sample != "" {
		msg += fmt.Sprintf(": %q", e.Sample)
	}
	return msg
}

// Loader fetches quiz content (question files and the optional app config)
// from a static-file base URL.
type Loader struct {
	baseURL  string
	fallback string
	client   *http.Client
	now      func() time.Time
}

// NewLoader returns a Loader rooted at baseURL. The fallback file, when
// non-empty, is attempted once if the primary question file cannot be
// loaded.
func NewLoader(baseURL, fallback string, client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{
		baseURL:  strings.TrimRight(baseURL, "/"),
		fallback: fallback,
		client:   client,
		now:      time.Now,
	}
}

// LoadQuestions fetches and validates the named question file. Invalid
// records are dropped; a file with zero valid records fails with
// ErrNoQuestions. When the primary file cannot be fetched or parsed and a
// fallback file is configured, the fallback is attempted exactly once.
func (l *Loader) LoadQuestions(ctx context.Context, name string) ([]QuestionRecord, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultQuestionsFile
	}

	records, err := l.fetchQuestions(ctx, name)
	if err != nil && l.fallback != "" && l.fallback != name {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			if fallbackRecords, fallbackErr := l.fetchQuestions(ctx, l.fallback); fallbackErr == nil {
				return fallbackRecords, nil
			}
		}
		return nil, err
	}
	return records, err
}

func (l *Loader) fetchQuestions(ctx context.Context, name string) ([]QuestionRecord, error) {
	resource := l.resourceURL(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return nil, &LoadError{Resource: name, Reason: err.Error()}
	}
	// Question files change between sessions; a cached copy could score
	// against a different answer than the one displayed.
	req.Header.Set("Cache-Control", "no-store")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &LoadError{Resource: name, Reason: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Resource: name,
			Status:   resp.StatusCode,
			Reason:   "unexpected status",
			Sample:   bodySample(resp.Body),
		}
	}

	if !isJSONContentType(resp.Header.Get("Content-Type")) {
		return nil, &LoadError{
			Resource: name,
			Status:   resp.StatusCode,
			Reason:   "unexpected content type " + resp.Header.Get("Content-Type"),
			Sample:   bodySample(resp.Body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Resource: name, Reason: "read body: " + err.Error()}
	}

	var raw []QuestionRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &LoadError{
			Resource: name,
			Status:   resp.StatusCode,
			Reason:   "parse: " + err.Error(),
			Sample:   sampleOf(body),
		}
	}

	valid := FilterValid(raw)
	if len(valid) == 0 {
		return nil, ErrNoQuestions
	}
	return valid, nil
}

// resourceURL appends a timestamp query param so intermediate caches never
// serve a stale question file even when they ignore Cache-Control.
func (l *Loader) resourceURL(name string) string {
	version := strconv.FormatInt(l.now().UnixNano(), 10)
	return l.baseURL + "/" + url.PathEscape(name) + "?v=" + version
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") || mediaType == "text/json"
}

func bodySample(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, bodySampleLimit))
	if err != nil {
		return ""
	}
	return sampleOf(data)
}

func sampleOf(body []byte) string {
	sample := strings.TrimSpace(string(body))
	if len(sample) > bodySampleLimit {
		sample = sample[:bodySampleLimit]
	}
	return sample
}
