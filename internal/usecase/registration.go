package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/logger"
	"github.com/arklim/social-platform-reviews/internal/infra/security"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

var (
	// ErrDuplicateIdentity indicates the username or email is already taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrAccountNotFound indicates no account matches the confirmation token's email.
	ErrAccountNotFound = errors.New("account not found")
)

// RegistrationService handles new account onboarding and email confirmation.
type RegistrationService struct {
	users   port.UserRepository
	tokens  *security.ConfirmationTokenCodec
	mailer  port.Mailer
	events  port.EventPublisher
	baseURL string
	logger  *zap.Logger
}

// NewRegistrationService constructs a registration service. baseURL is
// the externally reachable origin used to build confirmation links.
func NewRegistrationService(
	users port.UserRepository,
	tokens *security.ConfirmationTokenCodec,
	mailer port.Mailer,
	events port.EventPublisher,
	baseURL string,
	log *zap.Logger,
) *RegistrationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RegistrationService{
		users:   users,
		tokens:  tokens,
		mailer:  mailer,
		events:  events,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

// RegisterUser creates an unconfirmed account and dispatches the
// confirmation mail. Uniqueness of username and email is enforced by
// the store's indexes, so concurrent registrations for the same
// identity cannot both succeed. A mail dispatch failure does not roll
// back the created account; the account simply stays unconfirmed until
// the user requests a fresh link.
func (s *RegistrationService) RegisterUser(ctx context.Context, username, email, password, passwordConfirm string) (domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateRegistration(username, email, password, passwordConfirm); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		PasswordAlgo: "argon2id",
		Confirmed:    false,
		RegisteredAt: time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrDuplicateIdentity
		}
		return domain.User{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("issue confirmation token: %w", err)
	}

	link := fmt.Sprintf("%s/confirm_email/%s", s.baseURL, token)
	msg := port.MailMessage{
		To:      user.Email,
		Subject: "Confirm Your Email",
		Body:    fmt.Sprintf("Please click the link to confirm your email: %s", link),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		// The account already exists at this point; delivery failure
		// leaves it unconfirmed rather than undoing the registration.
		s.logger.Warn("confirmation mail dispatch failed",
			zap.String("email", logger.MaskEmail(user.Email)),
			zap.Error(err),
		)
	}

	if s.events != nil {
		if err := s.events.PublishUserRegistered(ctx, domain.UserRegisteredEvent{
			UserID:       user.ID,
			Username:     user.Username,
			Email:        user.Email,
			RegisteredAt: user.RegisteredAt,
		}); err != nil {
			s.logger.Warn("publish user.registered failed", zap.Error(err))
		}
	}

	return user, nil
}

// ConfirmEmail validates a confirmation token and flips the matching
// account to confirmed. The second call with the same valid token finds
// the account already confirmed and reports that without error, so
// confirmation is idempotent. Token failures never mutate state.
func (s *RegistrationService) ConfirmEmail(ctx context.Context, token string) (domain.User, bool, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return domain.User{}, false, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, false, ErrAccountNotFound
		}
		return domain.User{}, false, fmt.Errorf("lookup user: %w", err)
	}

	if user.Confirmed {
		return *user, true, nil
	}

	if err := s.users.SetConfirmed(ctx, user.ID); err != nil {
		return domain.User{}, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	user.Confirmed = true

	if s.events != nil {
		if err := s.events.PublishUserConfirmed(ctx, domain.UserConfirmedEvent{
			UserID:      user.ID,
			Email:       user.Email,
			ConfirmedAt: time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("publish user.confirmed failed", zap.Error(err))
		}
	}

	return *user, false, nil
}

// Bounds count characters, not bytes, so multi-byte names are measured
// the way the user sees them.
func validateRegistration(username, email, password, passwordConfirm string) error {
	if l := utf8.RuneCountInString(username); l < domain.UsernameMinLen || l > domain.UsernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrValidation, domain.UsernameMinLen, domain.UsernameMaxLen)
	}
	if l := utf8.RuneCountInString(email); l < domain.EmailMinLen || l > domain.EmailMaxLen {
		return fmt.Errorf("%w: email must be %d-%d characters", ErrValidation, domain.EmailMinLen, domain.EmailMaxLen)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email address is malformed", ErrValidation)
	}
	if l := utf8.RuneCountInString(password); l < domain.PasswordMinLen || l > domain.PasswordMaxLen {
		return fmt.Errorf("%w: password must be %d-%d characters", ErrValidation, domain.PasswordMinLen, domain.PasswordMaxLen)
	}
	if password != passwordConfirm {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	return nil
}
