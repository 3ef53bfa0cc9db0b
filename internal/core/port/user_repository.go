package port

import (
	"context"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
)

// UserRepository exposes persistence behavior for user accounts.
// Create surfaces repository.ErrDuplicate when the username or email
// collides with an existing row; uniqueness is enforced by the store,
// not by a pre-check.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetConfirmed(ctx context.Context, id string) error
}
