package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

type InsightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) insight.Repository {
	return &InsightRepository{db: db}
}

func (r *InsightRepository) Create(ctx context.Context, ins *insight.Insight) (int64, error) {
	if ins.CreatedAt.IsZero() {
		ins.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO ai_insights (type, title, description, severity, confidence, data, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		ins.Type, ins.Title, ins.Description, ins.Severity, ins.Confidence, ins.Data, ins.IsActive,
		ins.CreatedAt.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create insight", err)
	}

	return id, nil
}

func (r *InsightRepository) ListActive(ctx context.Context, limit int) ([]*insight.Insight, error) {
	query := `
		SELECT id, type, title, description, severity, confidence, data, is_active, created_at
		FROM ai_insights WHERE is_active = $1 ORDER BY id DESC LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, true, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list insights", err)
	}
	defer rows.Close()

	insights := make([]*insight.Insight, 0, limit)
	for rows.Next() {
		var ins insight.Insight
		var data sql.NullString
		var createdAt string
		err := rows.Scan(&ins.ID, &ins.Type, &ins.Title, &ins.Description, &ins.Severity, &ins.Confidence, &data, &ins.IsActive, &createdAt)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan insight", err)
		}
		ins.Data = data.String
		ins.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		insights = append(insights, &ins)
	}

	return insights, rows.Err()
}

func (r *InsightRepository) Deactivate(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "UPDATE ai_insights SET is_active = $1 WHERE id = $2", false, id)
	if err != nil {
		return errors.DatabaseError("Failed to deactivate insight", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Insight")
	}

	return nil
}
