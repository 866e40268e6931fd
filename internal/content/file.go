package content

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads and validates a question file from a local directory. It
// applies the same validation as LoadQuestions; the server uses it to play
// sessions straight from its content directory without an HTTP round trip to
// itself.
func LoadFile(dir, name string) ([]QuestionRecord, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultQuestionsFile
	}
	// Question files live flat in the content dir; reject path escapes.
	if filepath.Base(name) != name {
		return nil, &LoadError{Resource: name, Reason: "invalid question file name"}
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Resource: name, Reason: "file not found"}
		}
		return nil, &LoadError{Resource: name, Reason: "read: " + err.Error()}
	}

	var raw []QuestionRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Resource: name, Reason: "parse: " + err.Error(), Sample: sampleOf(data)}
	}

	valid := FilterValid(raw)
	if len(valid) == 0 {
		return nil, ErrNoQuestions
	}
	return valid, nil
}
