package quiz

import "math"

// Tiered end-of-quiz messages, highest threshold first.
const (
	messagePerfect = "You're a master birder!"
	messageGreat   = "Fantastic job! You really know your birds."
	messageGood    = "Nice work! There's a birder in you yet."
	messageKeepOn  = "Keep exploring, birding is a journey."
)

// Summary is the final result exposed to renderers once a quiz finishes.
type Summary struct {
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ReviewRow is one display-ready line of the post-quiz answer review.
type ReviewRow struct {
	Position  int    `json:"position"`
	Question  string `json:"question"`
	Selected  string `json:"selected"`
	Correct   string `json:"correct"`
	IsCorrect bool   `json:"is_correct"`
	ImageURL  string `json:"image,omitempty"`
	InfoText  string `json:"info_text,omitempty"`
	InfoURL   string `json:"info_url,omitempty"`
}

// Summarize computes the final percentage and tier message. A zero total
// yields zero percent rather than dividing by zero.
func Summarize(score, total int) Summary {
	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(score) / float64(total) * 100))
	}

	var message string
	switch {
	case percent == 100:
		message = messagePerfect
	case percent >= 80:
		message = messageGreat
	case percent >= 50:
		message = messageGood
	default:
		message = messageKeepOn
	}

	return Summary{Score: score, Total: total, Percent: percent, Message: message}
}

// BuildReview projects the answer log into display rows. Order follows the
// order answers were first recorded, not question-list order, and positions
// are one-based.
func BuildReview(entries []AnswerLogEntry) []ReviewRow {
	rows := make([]ReviewRow, 0, len(entries))
	for idx, entry := range entries {
		rows = append(rows, ReviewRow{
			Position:  idx + 1,
			Question:  entry.Question,
			Selected:  entry.Selected,
			Correct:   entry.Correct,
			IsCorrect: entry.IsCorrect,
			ImageURL:  entry.Image,
			InfoText:  entry.InfoText,
			InfoURL:   entry.InfoURL,
		})
	}
	return rows
}
