package port

import (
	"context"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishUserConfirmed(ctx context.Context, event domain.UserConfirmedEvent) error
	PublishReviewCreated(ctx context.Context, event domain.ReviewCreatedEvent) error
	PublishReviewUpdated(ctx context.Context, event domain.ReviewUpdatedEvent) error
	PublishReviewDeleted(ctx context.Context, event domain.ReviewDeletedEvent) error
}
