package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   eventID,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes reviews.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	return p.publish(ctx, event.EventID, "user.registered", event.UserID, event.RegisteredAt, event)
}

// PublishUserConfirmed publishes reviews.user.confirmed events.
func (p *EventPublisher) PublishUserConfirmed(ctx context.Context, event domain.UserConfirmedEvent) error {
	return p.publish(ctx, event.EventID, "user.confirmed", event.UserID, event.ConfirmedAt, event)
}

// PublishReviewCreated publishes reviews.review.created events.
func (p *EventPublisher) PublishReviewCreated(ctx context.Context, event domain.ReviewCreatedEvent) error {
	return p.publish(ctx, event.EventID, "review.created", event.UserID, event.CreatedAt, event)
}

// PublishReviewUpdated publishes reviews.review.updated events.
func (p *EventPublisher) PublishReviewUpdated(ctx context.Context, event domain.ReviewUpdatedEvent) error {
	return p.publish(ctx, event.EventID, "review.updated", event.UserID, event.UpdatedAt, event)
}

// PublishReviewDeleted publishes reviews.review.deleted events.
func (p *EventPublisher) PublishReviewDeleted(ctx context.Context, event domain.ReviewDeletedEvent) error {
	return p.publish(ctx, event.EventID, "review.deleted", event.UserID, event.DeletedAt, event)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
