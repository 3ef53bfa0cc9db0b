package domain

import "time"

// UserRegisteredEvent represents the payload for reviews.user.registered messages.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Username     string
	Email        string
	RegisteredAt time.Time
	Metadata     map[string]any
}

// UserConfirmedEvent represents the payload for reviews.user.confirmed messages.
type UserConfirmedEvent struct {
	EventID     string
	UserID      string
	Email       string
	ConfirmedAt time.Time
	Metadata    map[string]any
}

// ReviewCreatedEvent represents the payload for reviews.review.created messages.
type ReviewCreatedEvent struct {
	EventID     string
	ReviewID    string
	UserID      string
	ProjectName string
	Score       int
	CreatedAt   time.Time
	Metadata    map[string]any
}

// ReviewUpdatedEvent represents the payload for reviews.review.updated messages.
type ReviewUpdatedEvent struct {
	EventID     string
	ReviewID    string
	UserID      string
	ProjectName string
	Score       int
	UpdatedAt   time.Time
	Metadata    map[string]any
}

// ReviewDeletedEvent represents the payload for reviews.review.deleted messages.
type ReviewDeletedEvent struct {
	EventID     string
	ReviewID    string
	UserID      string
	ProjectName string
	DeletedAt   time.Time
	Metadata    map[string]any
}
