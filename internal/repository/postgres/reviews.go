package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

// ReviewRepository implements port.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewReviewRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewReviewRepository(exec pgExecutor) *ReviewRepository {
	return &ReviewRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var reviewColumns = []string{
	"id",
	"user_id",
	"project_name",
	"score",
	"content",
	"created_at",
}

// Create inserts a new review row. The composite unique index on
// (user_id, project_name) rejects a second review for the same pair;
// violations surface as repository.ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) error {
	stmt, args, err := r.builder.Insert("reviews.reviews").
		Columns(reviewColumns...).
		Values(
			review.ID,
			review.UserID,
			review.ProjectName,
			review.Score,
			review.Content,
			review.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert review sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if errors.Is(translateError(err), repository.ErrDuplicate) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// GetByID retrieves a review by identifier.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	stmt, args, err := r.builder.
		Select(reviewColumns...).
		From("reviews.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select review sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var review domain.Review
	if err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.ProjectName,
		&review.Score,
		&review.Content,
		&review.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &review, nil
}

// ListByProject returns all reviews for the given project in insertion order.
func (r *ReviewRepository) ListByProject(ctx context.Context, projectName string) ([]domain.Review, error) {
	stmt, args, err := r.builder.
		Select(reviewColumns...).
		From("reviews.reviews").
		Where(squirrel.Eq{"project_name": projectName}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reviews sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProjectName,
			&review.Score,
			&review.Content,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// Update rewrites the score and content of an existing review.
func (r *ReviewRepository) Update(ctx context.Context, id string, score int, content string) error {
	stmt, args, err := r.builder.
		Update("reviews.reviews").
		Set("score", score).
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update review sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a review row.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("reviews.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete review sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
