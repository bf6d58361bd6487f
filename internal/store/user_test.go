package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/marewang/final-bnn/types"
)

func TestUserRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "created_at", "updated_at"}).
		AddRow(int64(1), "Admin", "admin@bnn.go.id", "admin", "scrypt$16384$8$1$aa$bb", now, now)
	mock.ExpectQuery("SELECT id, name, email, role, password_hash").
		WithArgs("admin@bnn.go.id").
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	user, err := repo.GetByEmail(context.Background(), "admin@bnn.go.id")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if user.ID != 1 || user.Role != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, email, role, password_hash").
		WithArgs("nobody@bnn.go.id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewUserRepository(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@bnn.go.id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepositoryCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := NewUserRepository(db)
	total, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 accounts, got %d", total)
	}
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	repo := NewUserRepository(db)
	_, err = repo.Create(context.Background(), types.User{
		Name:         "Admin",
		Email:        "admin@bnn.go.id",
		Role:         "admin",
		PasswordHash: "scrypt$16384$8$1$aa$bb",
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Admin", "admin@bnn.go.id", "admin", "scrypt$16384$8$1$aa$bb", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := NewUserRepository(db)
	user, err := repo.Create(context.Background(), types.User{
		Name:         "Admin",
		Email:        "admin@bnn.go.id",
		Role:         "admin",
		PasswordHash: "scrypt$16384$8$1$aa$bb",
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if user.ID != 5 {
		t.Fatalf("expected id 5, got %d", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
