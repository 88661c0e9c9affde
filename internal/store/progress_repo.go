package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizforge/internal/quiz"
)

type progressRepo struct {
	q querier
}

func (r *progressRepo) Get(ctx context.Context, userID, categoryID string) (*quiz.CategoryProgress, error) {
	var p quiz.CategoryProgress
	var lastActivity int64
	err := r.q.QueryRowContext(ctx, `SELECT user_id, category_id, total_attempted,
		correct_count, total_points, current_streak, longest_streak,
		average_score, last_activity
		FROM progress WHERE user_id = ? AND category_id = ?`,
		userID, categoryID).Scan(&p.UserID, &p.CategoryID, &p.TotalAttempted,
		&p.CorrectCount, &p.TotalPoints, &p.CurrentStreak, &p.LongestStreak,
		&p.AverageScore, &lastActivity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	p.LastActivity = time.Unix(0, lastActivity)
	return &p, nil
}

func (r *progressRepo) Upsert(ctx context.Context, p quiz.CategoryProgress) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO progress
		(user_id, category_id, total_attempted, correct_count, total_points,
		 current_streak, longest_streak, average_score, last_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, category_id) DO UPDATE SET
			total_attempted = excluded.total_attempted,
			correct_count = excluded.correct_count,
			total_points = excluded.total_points,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			average_score = excluded.average_score,
			last_activity = excluded.last_activity`,
		p.UserID, p.CategoryID, p.TotalAttempted, p.CorrectCount, p.TotalPoints,
		p.CurrentStreak, p.LongestStreak, p.AverageScore, p.LastActivity.UnixNano())
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}
