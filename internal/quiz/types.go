package quiz

import "time"

// Difficulty is the ordinal difficulty level of a question and the target
// of a recommendation.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists all levels in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// ParseDifficulty parses a difficulty string, returning ErrInvalidInput
// for unknown levels.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", Invalidf("unknown difficulty %q", s)
	}
	return d, nil
}

// QuestionType describes how a question is answered.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	OpenText       QuestionType = "open_text"
)

// Answer is one answer option of a question. IsCorrect is the answer key
// and must never reach untrusted callers; see Question.Public.
type Answer struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

// Question is a quiz question. Read-only to the engine; owned by the
// question repository.
type Question struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"category_id"`
	Type       QuestionType `json:"type"`
	Text       string       `json:"text"`
	Difficulty Difficulty   `json:"difficulty"`
	Answers    []Answer     `json:"answers"`
	Points     int          `json:"points"`
	Active     bool         `json:"active"`
}

// Public returns a copy of the question with answer-key flags stripped.
// Every question handed to an untrusted caller must pass through here.
func (q Question) Public() Question {
	out := q
	out.Answers = make([]Answer, len(q.Answers))
	for i, a := range q.Answers {
		out.Answers[i] = Answer{ID: a.ID, Text: a.Text}
	}
	return out
}

// CorrectAnswer returns the first answer marked correct, or nil.
func (q Question) CorrectAnswer() *Answer {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	return nil
}

// AttemptRecord is one scored answer submission. Immutable once created.
type AttemptRecord struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	QuestionID       string     `json:"question_id"`
	CategoryID       string     `json:"category_id"`
	Difficulty       Difficulty `json:"difficulty"`
	IsCorrect        bool       `json:"is_correct"`
	PointsEarned     int        `json:"points_earned"`
	TimeTakenSeconds int        `json:"time_taken_seconds"`
	CreatedAt        time.Time  `json:"created_at"`
}

// CategoryProgress is the per-(user, category) aggregate. One row per pair,
// written only by the progress accumulator.
type CategoryProgress struct {
	UserID         string    `json:"user_id"`
	CategoryID     string    `json:"category_id"`
	TotalAttempted int       `json:"total_attempted"`
	CorrectCount   int       `json:"correct_count"`
	TotalPoints    int       `json:"total_points"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	AverageScore   float64   `json:"average_score"`
	LastActivity   time.Time `json:"last_activity"`
}
