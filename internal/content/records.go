package content

// QuestionRecord mirrors one entry of a quiz question file.
type QuestionRecord struct {
	Prompt   string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Image    string   `json:"image,omitempty"`
	Info     string   `json:"info,omitempty"`
	InfoText string   `json:"info_text,omitempty"`
	InfoURL  string   `json:"info_url,omitempty"`
	Title    string   `json:"title,omitempty"`
}

// Valid reports whether a record is playable: a non-empty prompt, at least
// two choices, and an answer that is one of the choices. Records that fail
// are dropped at load time so one bad authoring entry cannot take down the
// whole quiz.
func (r QuestionRecord) Valid() bool {
	if r.Prompt == "" || r.Answer == "" {
		return false
	}
	if len(r.Choices) < 2 {
		return false
	}
	for _, choice := range r.Choices {
		if choice == r.Answer {
			return true
		}
	}
	return false
}

// FilterValid returns the playable subset of raw, preserving order.
func FilterValid(raw []QuestionRecord) []QuestionRecord {
	valid := make([]QuestionRecord, 0, len(raw))
	for _, record := range raw {
		if record.Valid() {
			valid = append(valid, record)
		}
	}
	return valid
}
