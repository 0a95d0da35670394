package results

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Put inserts a new result row. The primary key constraint rejects
// identifier collisions.
func (r *PGRepo) Put(ctx context.Context, result AnalysisResult) (string, error) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO results (id, text, sentiment, score, magnitude, audio_filename)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		result.ID,
		result.Text,
		string(result.Sentiment),
		result.Score,
		result.Magnitude,
		nullIfEmpty(result.AudioFilename),
	)
	if err != nil {
		return "", err
	}
	return result.ID, nil
}

// Get returns a result by its ID.
func (r *PGRepo) Get(ctx context.Context, id string) (AnalysisResult, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, text, sentiment, score, magnitude, audio_filename
		 FROM results WHERE id = $1`, id)

	var result AnalysisResult
	var sentiment string
	var audioFilename sql.NullString
	err := row.Scan(&result.ID, &result.Text, &sentiment, &result.Score, &result.Magnitude, &audioFilename)
	if errors.Is(err, sql.ErrNoRows) {
		return AnalysisResult{}, ErrNotFound
	}
	if err != nil {
		return AnalysisResult{}, err
	}

	result.Sentiment = Sentiment(sentiment)
	if audioFilename.Valid {
		result.AudioFilename = audioFilename.String
	}
	return result, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
