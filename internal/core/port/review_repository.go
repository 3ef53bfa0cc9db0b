package port

import (
	"context"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
)

// ReviewRepository exposes persistence behavior for project reviews.
// Create surfaces repository.ErrDuplicate when a review already exists
// for the (user, project) pair; the composite unique index is the
// atomicity boundary, not a check-then-act lookup.
type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListByProject(ctx context.Context, projectName string) ([]domain.Review, error)
	Update(ctx context.Context, id string, score int, content string) error
	Delete(ctx context.Context, id string) error
}
