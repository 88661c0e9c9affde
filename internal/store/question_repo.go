package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizforge/internal/quiz"
)

// QuestionRepo implements quiz.QuestionRepository over SQLite. Answers
// are packed as a JSON column; the correctness flags stay server-side
// and are stripped at the engine boundary before reaching callers.
type QuestionRepo struct {
	q querier
}

func (r *QuestionRepo) Get(ctx context.Context, id string) (*quiz.Question, error) {
	row := r.q.QueryRowContext(ctx, `SELECT id, category_id, type, text,
		difficulty, answers, points, active FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, quiz.NotFoundf("question %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepo) ListByCategoryDifficulty(ctx context.Context, categoryID string, difficulty quiz.Difficulty, limit int, excludeIDs []string) ([]quiz.Question, error) {
	query := `SELECT id, category_id, type, text, difficulty, answers, points, active
		FROM questions WHERE category_id = ? AND difficulty = ? AND active = 1`
	args := []any{categoryID, string(difficulty)}

	if len(excludeIDs) > 0 {
		query += ` AND id NOT IN (` + placeholders(len(excludeIDs)) + `)`
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []quiz.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

func (r *QuestionRepo) Count(ctx context.Context, categoryID string, difficulty *quiz.Difficulty) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE category_id = ? AND active = 1`
	args := []any{categoryID}
	if difficulty != nil {
		query += ` AND difficulty = ?`
		args = append(args, string(*difficulty))
	}

	var n int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Insert stores a question, replacing any existing row with the same id.
func (r *QuestionRepo) Insert(ctx context.Context, q quiz.Question) error {
	answers, err := json.Marshal(q.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = r.q.ExecContext(ctx, `INSERT OR REPLACE INTO questions
		(id, category_id, type, text, difficulty, answers, points, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.CategoryID, string(q.Type), q.Text, string(q.Difficulty),
		string(answers), q.Points, boolInt(q.Active))
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*quiz.Question, error) {
	var q quiz.Question
	var answers string
	var active int
	if err := row.Scan(&q.ID, &q.CategoryID, &q.Type, &q.Text, &q.Difficulty,
		&answers, &q.Points, &active); err != nil {
		return nil, err
	}
	q.Active = active != 0
	if err := json.Unmarshal([]byte(answers), &q.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &q, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
