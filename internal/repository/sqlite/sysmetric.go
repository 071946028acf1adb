package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

type SysMetricRepository struct {
	db *sql.DB
}

func NewSysMetricRepository(db *sql.DB) sysmetric.Repository {
	return &SysMetricRepository{db: db}
}

func (r *SysMetricRepository) Create(ctx context.Context, m *sysmetric.Metric) (int64, error) {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}

	query := `
		INSERT INTO system_metrics (metric_type, component, value, unit, status, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		m.MetricType, m.Component, m.Value, m.Unit, m.Status, m.Timestamp.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create metric", err)
	}

	return id, nil
}

func (r *SysMetricRepository) Latest(ctx context.Context) ([]*sysmetric.Metric, error) {
	// Most recent row per (metric_type, component) pair
	query := `
		SELECT m.id, m.metric_type, m.component, m.value, m.unit, m.status, m.timestamp
		FROM system_metrics m
		INNER JOIN (
			SELECT metric_type, component, MAX(id) AS max_id
			FROM system_metrics GROUP BY metric_type, component
		) latest ON m.id = latest.max_id
		ORDER BY m.metric_type, m.component
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.DatabaseError("Failed to get latest metrics", err)
	}
	defer rows.Close()

	return scanMetrics(rows)
}

func (r *SysMetricRepository) History(ctx context.Context, metricType string, since time.Time) ([]*sysmetric.Metric, error) {
	query := `
		SELECT id, metric_type, component, value, unit, status, timestamp
		FROM system_metrics WHERE metric_type = $1 AND timestamp >= $2 ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, metricType, since.Format(time.RFC3339))
	if err != nil {
		return nil, errors.DatabaseError("Failed to get metric history", err)
	}
	defer rows.Close()

	return scanMetrics(rows)
}

func (r *SysMetricRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM system_metrics WHERE timestamp < $1", cutoff.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to delete old metrics", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}

func scanMetrics(rows *sql.Rows) ([]*sysmetric.Metric, error) {
	metrics := make([]*sysmetric.Metric, 0, 64)
	for rows.Next() {
		var m sysmetric.Metric
		var timestamp string
		err := rows.Scan(&m.ID, &m.MetricType, &m.Component, &m.Value, &m.Unit, &m.Status, &timestamp)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan metric", err)
		}
		m.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
		metrics = append(metrics, &m)
	}

	return metrics, rows.Err()
}
