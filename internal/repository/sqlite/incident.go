package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

type IncidentRepository struct {
	db *sql.DB
}

func NewIncidentRepository(db *sql.DB) incident.Repository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(ctx context.Context, inc *incident.Incident) (int64, error) {
	now := time.Now()
	inc.CreatedAt = now
	inc.UpdatedAt = now

	query := `
		INSERT INTO incidents (incident_id, title, description, severity, type, status, assignee_id, risk_score, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		inc.IncidentID, inc.Title, inc.Description, inc.Severity, inc.Type, inc.Status,
		inc.AssigneeID, inc.RiskScore, inc.Metadata, now.Format(time.RFC3339), now.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create incident", err)
	}

	return id, nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*incident.Incident, error) {
	query := `
		SELECT id, incident_id, title, description, severity, type, status, assignee_id, risk_score, metadata, created_at, updated_at
		FROM incidents WHERE id = $1
	`

	var inc incident.Incident
	var assignee sql.NullInt64
	var metadata sql.NullString
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&inc.ID, &inc.IncidentID, &inc.Title, &inc.Description, &inc.Severity, &inc.Type, &inc.Status,
		&assignee, &inc.RiskScore, &metadata, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Incident")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get incident", err)
	}

	if assignee.Valid {
		inc.AssigneeID = &assignee.Int64
	}
	inc.Metadata = metadata.String
	inc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	inc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &inc, nil
}

func (r *IncidentRepository) Update(ctx context.Context, inc *incident.Incident) error {
	inc.UpdatedAt = time.Now()

	query := `
		UPDATE incidents SET title = $1, description = $2, severity = $3, type = $4, status = $5, assignee_id = $6, risk_score = $7, metadata = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.ExecContext(ctx, query,
		inc.Title, inc.Description, inc.Severity, inc.Type, inc.Status,
		inc.AssigneeID, inc.RiskScore, inc.Metadata, inc.UpdatedAt.Format(time.RFC3339), inc.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update incident", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Incident")
	}

	return nil
}

func (r *IncidentRepository) List(ctx context.Context, filter incident.Filter, limit, offset int) ([]*incident.Incident, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Severity != "" {
		where = append(where, "severity = "+arg(filter.Severity))
	}
	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}
	if filter.Type != "" {
		where = append(where, "type = "+arg(filter.Type))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM incidents WHERE %s", whereClause)
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count incidents", err)
	}

	query := fmt.Sprintf(`
		SELECT id, incident_id, title, description, severity, type, status, assignee_id, risk_score, metadata, created_at, updated_at
		FROM incidents WHERE %s ORDER BY id DESC LIMIT %s OFFSET %s
	`, whereClause, arg(limit), arg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list incidents", err)
	}
	defer rows.Close()

	incidents := make([]*incident.Incident, 0, limit)
	for rows.Next() {
		var inc incident.Incident
		var assignee sql.NullInt64
		var metadata sql.NullString
		var createdAt, updatedAt string
		err := rows.Scan(
			&inc.ID, &inc.IncidentID, &inc.Title, &inc.Description, &inc.Severity, &inc.Type, &inc.Status,
			&assignee, &inc.RiskScore, &metadata, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan incident", err)
		}
		if assignee.Valid {
			inc.AssigneeID = &assignee.Int64
		}
		inc.Metadata = metadata.String
		inc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		inc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		incidents = append(incidents, &inc)
	}

	return incidents, total, rows.Err()
}

func (r *IncidentRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	query := `SELECT severity, COUNT(*) FROM incidents WHERE status NOT IN ('resolved', 'closed') GROUP BY severity`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count incidents by severity", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var severity string
		var count int
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, errors.DatabaseError("Failed to scan count", err)
		}
		counts[severity] = count
	}

	return counts, rows.Err()
}
