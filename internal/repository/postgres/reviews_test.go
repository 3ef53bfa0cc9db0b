package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

func testReview() domain.Review {
	return domain.Review{
		ID:          "rev-1",
		UserID:      "user-1",
		ProjectName: "Hub",
		Score:       4,
		Content:     "Solid project, would deploy again.",
		CreatedAt:   time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestReviewRepository_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)
	review := testReview()

	mock.ExpectExec(`INSERT INTO reviews\.reviews`).
		WithArgs(review.ID, review.UserID, review.ProjectName, review.Score, review.Content, review.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reviews_user_project_key"})

	if err := repo.Create(context.Background(), review); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM reviews\.reviews WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewRepository_ListByProject(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)
	first := testReview()
	second := testReview()
	second.ID = "rev-2"
	second.UserID = "user-2"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)

	rows := pgxmock.NewRows(reviewColumns).
		AddRow(first.ID, first.UserID, first.ProjectName, first.Score, first.Content, first.CreatedAt).
		AddRow(second.ID, second.UserID, second.ProjectName, second.Score, second.Content, second.CreatedAt)

	mock.ExpectQuery(`SELECT .+ FROM reviews\.reviews WHERE project_name = \$1 ORDER BY created_at ASC`).
		WithArgs("Hub").
		WillReturnRows(rows)

	reviews, err := repo.ListByProject(context.Background(), "Hub")
	if err != nil {
		t.Fatalf("ListByProject returned error: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}
	if reviews[0].ID != "rev-1" || reviews[1].ID != "rev-2" {
		t.Fatalf("unexpected order: %s, %s", reviews[0].ID, reviews[1].ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReviewRepository_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)

	mock.ExpectExec(`UPDATE reviews\.reviews SET score = \$1, content = \$2 WHERE id = \$3`).
		WithArgs(2, "Changed my mind after the last release.", "rev-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.Update(context.Background(), "rev-1", 2, "Changed my mind after the last release."); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReviewRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)

	mock.ExpectExec(`UPDATE reviews\.reviews`).
		WithArgs(2, "Changed my mind after the last release.", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.Update(context.Background(), "missing", 2, "Changed my mind after the last release."); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewRepository_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)

	mock.ExpectExec(`DELETE FROM reviews\.reviews WHERE id = \$1`).
		WithArgs("rev-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := repo.Delete(context.Background(), "rev-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReviewRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewReviewRepository(mock)

	mock.ExpectExec(`DELETE FROM reviews\.reviews WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
