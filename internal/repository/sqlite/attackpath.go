package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

type AttackPathRepository struct {
	db *sql.DB
}

func NewAttackPathRepository(db *sql.DB) attackpath.Repository {
	return &AttackPathRepository{db: db}
}

func (r *AttackPathRepository) Create(ctx context.Context, p *attackpath.AttackPath) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO attack_paths (name, severity, nodes, edges, likelihood, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Severity, p.Nodes, p.Edges, p.Likelihood, p.CreatedAt.Format(time.RFC3339),
	).Scan(&id)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create attack path", err)
	}

	return id, nil
}

func (r *AttackPathRepository) GetByID(ctx context.Context, id int64) (*attackpath.AttackPath, error) {
	query := `
		SELECT id, name, severity, nodes, edges, likelihood, created_at
		FROM attack_paths WHERE id = $1
	`

	var p attackpath.AttackPath
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Severity, &p.Nodes, &p.Edges, &p.Likelihood, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Attack path")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get attack path", err)
	}

	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

func (r *AttackPathRepository) List(ctx context.Context, limit int) ([]*attackpath.AttackPath, error) {
	query := `
		SELECT id, name, severity, nodes, edges, likelihood, created_at
		FROM attack_paths ORDER BY id DESC LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list attack paths", err)
	}
	defer rows.Close()

	paths := make([]*attackpath.AttackPath, 0, limit)
	for rows.Next() {
		var p attackpath.AttackPath
		var createdAt string
		err := rows.Scan(&p.ID, &p.Name, &p.Severity, &p.Nodes, &p.Edges, &p.Likelihood, &createdAt)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan attack path", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		paths = append(paths, &p)
	}

	return paths, rows.Err()
}
