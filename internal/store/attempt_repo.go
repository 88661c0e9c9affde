package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

type attemptRepo struct {
	q querier
}

func (r *attemptRepo) ListRecent(ctx context.Context, userID, categoryID string, limit int) ([]quiz.AttemptRecord, error) {
	query := `SELECT id, user_id, question_id, category_id, difficulty,
		is_correct, points_earned, time_taken_seconds, created_at
		FROM attempts WHERE user_id = ?`
	args := []any{userID}
	if categoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []quiz.AttemptRecord
	for rows.Next() {
		var rec quiz.AttemptRecord
		var correct int
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.QuestionID, &rec.CategoryID,
			&rec.Difficulty, &correct, &rec.PointsEarned, &rec.TimeTakenSeconds, &createdAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.IsCorrect = correct != 0
		rec.CreatedAt = time.Unix(0, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Create(ctx context.Context, rec quiz.AttemptRecord) (quiz.AttemptRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.q.ExecContext(ctx, `INSERT INTO attempts
		(id, user_id, question_id, category_id, difficulty, is_correct,
		 points_earned, time_taken_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.QuestionID, rec.CategoryID, string(rec.Difficulty),
		boolInt(rec.IsCorrect), rec.PointsEarned, rec.TimeTakenSeconds, rec.CreatedAt.UnixNano())
	if err != nil {
		return quiz.AttemptRecord{}, fmt.Errorf("insert attempt: %w", err)
	}
	return rec, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
