// Package scoring judges submitted answers and computes points.
package scoring

import (
	"github.com/abhisek/quizforge/internal/quiz"
)

const (
	// bonusCutoffSeconds is the elapsed time beyond which no time bonus
	// is awarded.
	bonusCutoffSeconds = 60

	// bonusStepSeconds is the width of one bonus step.
	bonusStepSeconds = 10

	// bonusPerStep is the points awarded per bonus step.
	bonusPerStep = 2
)

// Submission is a single answer submission to score. Exactly one of
// AnswerID and AnswerText is used, depending on the question type.
type Submission struct {
	AnswerID         string
	AnswerText       string
	TimeTakenSeconds int
}

// Result is the outcome of scoring one submission.
type Result struct {
	IsCorrect    bool
	PointsEarned int
	Explanation  string
}

// Score judges the submission against the question's answer key.
// Pure function of its inputs; negative elapsed time clamps to zero.
func Score(q *quiz.Question, sub Submission) (Result, error) {
	if q == nil {
		return Result{}, quiz.Invalidf("scoring requires a question")
	}

	correct, err := judge(q, sub)
	if err != nil {
		return Result{}, err
	}

	res := Result{IsCorrect: correct}
	if correct {
		res.PointsEarned = q.Points + TimeBonus(sub.TimeTakenSeconds)
	}
	if key := q.CorrectAnswer(); key != nil {
		res.Explanation = key.Text
	}
	return res, nil
}

// TimeBonus computes the decreasing time bonus for a correct answer.
// The bonus floors at zero once elapsed reaches 60 seconds.
func TimeBonus(elapsedSeconds int) int {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	steps := (bonusCutoffSeconds - elapsedSeconds) / bonusStepSeconds
	if steps < 0 {
		return 0
	}
	return steps * bonusPerStep
}

func judge(q *quiz.Question, sub Submission) (bool, error) {
	switch q.Type {
	case quiz.MultipleChoice, quiz.TrueFalse:
		if sub.AnswerID == "" {
			return false, quiz.Invalidf("question %s requires an answer id", q.ID)
		}
		for _, a := range q.Answers {
			if a.ID == sub.AnswerID {
				return a.IsCorrect, nil
			}
		}
		return false, quiz.Invalidf("answer %s does not belong to question %s", sub.AnswerID, q.ID)

	case quiz.OpenText:
		key := q.CorrectAnswer()
		if key == nil {
			return false, quiz.Invalidf("question %s has no answer key", q.ID)
		}
		return TextMatches(sub.AnswerText, key.Text), nil

	default:
		return false, quiz.Invalidf("unknown question type %q", q.Type)
	}
}
