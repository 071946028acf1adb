package sqlite

import (
	"context"
	"testing"

	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		Email:        "analyst@agisfl.local",
		Username:     "analyst",
		PasswordHash: "$2a$04$hash",
		Role:         user.RoleAnalyst,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == 0 {
		t.Error("Create() did not set user ID")
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "dup@agisfl.local", PasswordHash: "h", Role: user.RoleViewer}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err := repo.Create(ctx, &user.User{Email: "dup@agisfl.local", PasswordHash: "h", Role: user.RoleViewer})
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeConflict {
		t.Errorf("Create() duplicate error = %v, want conflict", err)
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{
		Email:        "admin@agisfl.local",
		Username:     "admin",
		PasswordHash: "$2a$04$hash",
		Role:         user.RoleAdmin,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByEmail(ctx, "admin@agisfl.local")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != u.ID || got.Role != user.RoleAdmin || got.Username != "admin" {
		t.Errorf("GetByEmail() = %+v, want fields from %+v", got, u)
	}

	_, err = repo.GetByEmail(ctx, "ghost@agisfl.local")
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("GetByEmail() unknown error = %v, want not found", err)
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "viewer@agisfl.local", PasswordHash: "h", Role: user.RoleViewer}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u.Role = user.RoleAnalyst
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Role != user.RoleAnalyst {
		t.Errorf("Update() role = %v, want analyst", got.Role)
	}

	err = repo.Update(ctx, &user.User{ID: 999, Email: "x@x", PasswordHash: "h", Role: user.RoleViewer})
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("Update() unknown error = %v, want not found", err)
	}
}
