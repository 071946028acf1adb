package sqlite

import (
	"context"
	"testing"

	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/testutil"
)

func TestAttackPathRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAttackPathRepository(db)
	ctx := context.Background()

	p := &attackpath.AttackPath{
		Name:       "Perimeter to database",
		Severity:   "critical",
		Nodes:      `[{"id":"fw","label":"Firewall"},{"id":"db","label":"Database"}]`,
		Edges:      `[{"from":"fw","to":"db"}]`,
		Likelihood: 0.35,
	}

	id, err := repo.Create(ctx, p)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != p.Name || got.Nodes != p.Nodes || got.Edges != p.Edges {
		t.Errorf("GetByID() = %+v, want fields from %+v", got, p)
	}

	_, err = repo.GetByID(ctx, 999)
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("GetByID() unknown error = %v, want not found", err)
	}
}

func TestAttackPathRepository_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAttackPathRepository(db)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Create(ctx, &attackpath.AttackPath{
			Name: name, Severity: "low", Nodes: "[]", Edges: "[]",
		}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	paths, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("List() returned %d paths, want 2", len(paths))
	}
	if paths[0].Name != "third" {
		t.Errorf("List() first = %v, want newest", paths[0].Name)
	}
}
