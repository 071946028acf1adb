package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

type ThreatRepository struct {
	db *sql.DB
}

func NewThreatRepository(db *sql.DB) threat.Repository {
	return &ThreatRepository{db: db}
}

func (r *ThreatRepository) Create(ctx context.Context, t *threat.Threat) (int64, error) {
	if t.DetectedAt.IsZero() {
		t.DetectedAt = time.Now()
	}

	query := `
		INSERT INTO threats (threat_id, name, type, severity, description, source_ip, target_ip, confidence, is_active, metadata, detected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		t.ThreatID, t.Name, t.Type, t.Severity, t.Description, t.SourceIP, t.TargetIP,
		t.Confidence, t.IsActive, t.Metadata, t.DetectedAt.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create threat", err)
	}

	return id, nil
}

func (r *ThreatRepository) GetByID(ctx context.Context, id int64) (*threat.Threat, error) {
	query := `
		SELECT id, threat_id, name, type, severity, description, source_ip, target_ip, confidence, is_active, metadata, detected_at
		FROM threats WHERE id = $1
	`

	t, err := scanThreat(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Threat")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get threat", err)
	}

	return t, nil
}

func (r *ThreatRepository) Update(ctx context.Context, t *threat.Threat) error {
	query := `
		UPDATE threats SET name = $1, type = $2, severity = $3, description = $4, source_ip = $5, target_ip = $6, confidence = $7, is_active = $8, metadata = $9
		WHERE id = $10
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Type, t.Severity, t.Description, t.SourceIP, t.TargetIP, t.Confidence, t.IsActive, t.Metadata, t.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update threat", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Threat")
	}

	return nil
}

func (r *ThreatRepository) List(ctx context.Context, filter threat.Filter, limit, offset int) ([]*threat.Threat, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != "" {
		where = append(where, "type = "+arg(filter.Type))
	}
	if filter.Severity != "" {
		where = append(where, "severity = "+arg(filter.Severity))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active = "+arg(true))
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM threats WHERE %s", whereClause)
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to count threats", err)
	}

	query := fmt.Sprintf(`
		SELECT id, threat_id, name, type, severity, description, source_ip, target_ip, confidence, is_active, metadata, detected_at
		FROM threats WHERE %s ORDER BY id DESC LIMIT %s OFFSET %s
	`, whereClause, arg(limit), arg(offset))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list threats", err)
	}
	defer rows.Close()

	threats := make([]*threat.Threat, 0, limit)
	for rows.Next() {
		t, err := scanThreat(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan threat", err)
		}
		threats = append(threats, t)
	}

	return threats, total, rows.Err()
}

func (r *ThreatRepository) CountActiveBySeverity(ctx context.Context) (map[string]int, error) {
	query := `SELECT severity, COUNT(*) FROM threats WHERE is_active = $1 GROUP BY severity`

	rows, err := r.db.QueryContext(ctx, query, true)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count threats by severity", err)
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

func (r *ThreatRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM threats WHERE is_active = $1 AND detected_at < $2",
		false, cutoff.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete inactive threats", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanThreat(row scanner) (*threat.Threat, error) {
	var t threat.Threat
	var description, sourceIP, targetIP, metadata sql.NullString
	var detectedAt string
	err := row.Scan(
		&t.ID, &t.ThreatID, &t.Name, &t.Type, &t.Severity, &description, &sourceIP, &targetIP,
		&t.Confidence, &t.IsActive, &metadata, &detectedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Description = description.String
	t.SourceIP = sourceIP.String
	t.TargetIP = targetIP.String
	t.Metadata = metadata.String
	t.DetectedAt, _ = time.Parse(time.RFC3339, detectedAt)
	return &t, nil
}
