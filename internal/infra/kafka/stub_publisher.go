package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Used in
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent("user.registered", event.UserID, event.RegisteredAt, event)
	return nil
}

func (p *StubPublisher) PublishUserConfirmed(_ context.Context, event domain.UserConfirmedEvent) error {
	p.logEvent("user.confirmed", event.UserID, event.ConfirmedAt, event)
	return nil
}

func (p *StubPublisher) PublishReviewCreated(_ context.Context, event domain.ReviewCreatedEvent) error {
	p.logEvent("review.created", event.UserID, event.CreatedAt, event)
	return nil
}

func (p *StubPublisher) PublishReviewUpdated(_ context.Context, event domain.ReviewUpdatedEvent) error {
	p.logEvent("review.updated", event.UserID, event.UpdatedAt, event)
	return nil
}

func (p *StubPublisher) PublishReviewDeleted(_ context.Context, event domain.ReviewDeletedEvent) error {
	p.logEvent("review.deleted", event.UserID, event.DeletedAt, event)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
