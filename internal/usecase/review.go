package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

var (
	// ErrReviewNotFound indicates the review id does not exist.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview indicates the user already reviewed this project.
	ErrDuplicateReview = errors.New("project already reviewed by this user")
	// ErrNotReviewOwner indicates a mutation attempt on another user's
	// review. Ownership enforcement is a deliberate policy here: only
	// the author may edit or delete a review.
	ErrNotReviewOwner = errors.New("review belongs to another user")
)

// ReviewService manages project reviews on behalf of authenticated users.
type ReviewService struct {
	reviews port.ReviewRepository
	events  port.EventPublisher
	logger  *zap.Logger
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews port.ReviewRepository, events port.EventPublisher, log *zap.Logger) *ReviewService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReviewService{reviews: reviews, events: events, logger: log}
}

// List returns all reviews for the given project. An empty project
// name falls back to the default project.
func (s *ReviewService) List(ctx context.Context, projectName string) ([]domain.Review, error) {
	if projectName == "" {
		projectName = domain.DefaultProjectName
	}

	reviews, err := s.reviews.ListByProject(ctx, projectName)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Create persists a new review owned by userID. The (user, project)
// uniqueness is enforced by the store's composite index, so two
// concurrent creates for the same pair cannot both succeed.
func (s *ReviewService) Create(ctx context.Context, userID, projectName string, score int, content string) (domain.Review, error) {
	if !domain.IsKnownProject(projectName) {
		return domain.Review{}, fmt.Errorf("%w: unknown project %q", ErrValidation, projectName)
	}
	if err := validateReviewInput(score, content); err != nil {
		return domain.Review{}, err
	}

	review := domain.Review{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProjectName: projectName,
		Score:       score,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Review{}, ErrDuplicateReview
		}
		return domain.Review{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.events != nil {
		if err := s.events.PublishReviewCreated(ctx, domain.ReviewCreatedEvent{
			ReviewID:    review.ID,
			UserID:      review.UserID,
			ProjectName: review.ProjectName,
			Score:       review.Score,
			CreatedAt:   review.CreatedAt,
		}); err != nil {
			s.logger.Warn("publish review.created failed", zap.Error(err))
		}
	}

	return review, nil
}

// Edit rewrites the score and content of a review owned by userID.
func (s *ReviewService) Edit(ctx context.Context, userID, reviewID string, score int, content string) (domain.Review, error) {
	review, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if err := validateReviewInput(score, content); err != nil {
		return domain.Review{}, err
	}

	if err := s.reviews.Update(ctx, reviewID, score, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Review{}, ErrReviewNotFound
		}
		return domain.Review{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	review.Score = score
	review.Content = content

	if s.events != nil {
		if err := s.events.PublishReviewUpdated(ctx, domain.ReviewUpdatedEvent{
			ReviewID:    review.ID,
			UserID:      review.UserID,
			ProjectName: review.ProjectName,
			Score:       score,
			UpdatedAt:   time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("publish review.updated failed", zap.Error(err))
		}
	}

	return *review, nil
}

// Delete removes a review owned by userID.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.ownedReview(ctx, userID, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if s.events != nil {
		if err := s.events.PublishReviewDeleted(ctx, domain.ReviewDeletedEvent{
			ReviewID:    review.ID,
			UserID:      review.UserID,
			ProjectName: review.ProjectName,
			DeletedAt:   time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("publish review.deleted failed", zap.Error(err))
		}
	}

	return nil
}

func (s *ReviewService) ownedReview(ctx context.Context, userID, reviewID string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("lookup review: %w", err)
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}
	return review, nil
}

func validateReviewInput(score int, content string) error {
	if score < domain.ReviewScoreMin || score > domain.ReviewScoreMax {
		return fmt.Errorf("%w: score must be %d-%d", ErrValidation, domain.ReviewScoreMin, domain.ReviewScoreMax)
	}
	// Characters, not bytes, so multi-byte content is measured the way
	// the user sees it.
	if l := utf8.RuneCountInString(content); l < domain.ReviewContentMin || l > domain.ReviewContentMax {
		return fmt.Errorf("%w: content must be %d-%d characters", ErrValidation, domain.ReviewContentMin, domain.ReviewContentMax)
	}
	return nil
}
