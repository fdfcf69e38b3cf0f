package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mindsync/wellness/internal/db"
	"github.com/mindsync/wellness/internal/model"
)

func newTestRepository(t *testing.T) UserRepository {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	sqlDB, err := db.Init("sqlite", conn)
	if err != nil {
		t.Fatalf("db.Init: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.RunMigrations(sqlDB.DB, "sqlite")
	if err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	return NewUserRepository(sqlDB)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	user := &model.User{Name: "Ann", Email: "a@x.com", PasswordHash: "hash"}
	err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected an assigned id")
	}

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, &model.User{Name: "Other", Email: "a@x.com", PasswordHash: "hash"})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("by id omits password", func(t *testing.T) {
		got, err := repo.ByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("ByID: %v", err)
		}
		if got.PasswordHash != "" {
			t.Fatal("ByID must not load the password hash")
		}
		if got.Age != nil {
			t.Fatalf("expected no age, got %d", *got.Age)
		}
	})

	t.Run("by email loads password", func(t *testing.T) {
		got, err := repo.ByEmail(ctx, "a@x.com")
		if err != nil {
			t.Fatalf("ByEmail: %v", err)
		}
		if got.PasswordHash != "hash" {
			t.Fatalf("expected password hash, got %q", got.PasswordHash)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.ByID(ctx, "missing")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("ByID: expected ErrUserNotFound, got %v", err)
		}
		_, err = repo.ByEmail(ctx, "b@x.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("ByEmail: expected ErrUserNotFound, got %v", err)
		}
		_, err = repo.UpdateProfile(ctx, "missing", model.ProfileChanges{})
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("UpdateProfile: expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("update profile", func(t *testing.T) {
		age := 0
		location := "Pune"
		got, err := repo.UpdateProfile(ctx, user.ID, model.ProfileChanges{Age: &age, Location: &location})
		if err != nil {
			t.Fatalf("UpdateProfile: %v", err)
		}
		if got.Age == nil || *got.Age != 0 {
			t.Fatalf("expected age 0, got %v", got.Age)
		}
		if got.Location != "Pune" || got.Name != "Ann" {
			t.Fatalf("unexpected row %+v", got)
		}
		if got.PasswordHash != "" {
			t.Fatal("UpdateProfile must not return the password hash")
		}

		again, err := repo.UpdateProfile(ctx, user.ID, model.ProfileChanges{})
		if err != nil {
			t.Fatalf("empty UpdateProfile: %v", err)
		}
		if again.Location != "Pune" || again.Age == nil {
			t.Fatalf("empty update changed fields: %+v", again)
		}
	})
}
