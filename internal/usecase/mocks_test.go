package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/arklim/social-platform-reviews/internal/core/domain"
	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/repository"
)

type mockUserRepository struct {
	users map[string]domain.User // keyed by ID

	createErr error
	creates   int

	createdUser domain.User

	setConfirmedErr   error
	setConfirmedCalls int
	confirmedIDs      []string
}

func newMockUserRepository(users ...domain.User) *mockUserRepository {
	repo := &mockUserRepository{users: make(map[string]domain.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *mockUserRepository) Create(_ context.Context, user domain.User) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.users[user.ID] = user
	r.createdUser = user
	return nil
}

func (r *mockUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := user
	return &u, nil
}

func (r *mockUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *mockUserRepository) SetConfirmed(_ context.Context, id string) error {
	r.setConfirmedCalls++
	if r.setConfirmedErr != nil {
		return r.setConfirmedErr
	}
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Confirmed = true
	r.users[id] = user
	r.confirmedIDs = append(r.confirmedIDs, id)
	return nil
}

//

type mockReviewRepository struct {
	reviews map[string]domain.Review

	createErr error
	creates   int

	updateErr error
	updates   int

	deleteErr error
	deletes   int

	listErr      error
	listProjects []string
}

func newMockReviewRepository(reviews ...domain.Review) *mockReviewRepository {
	repo := &mockReviewRepository{reviews: make(map[string]domain.Review)}
	for _, rv := range reviews {
		repo.reviews[rv.ID] = rv
	}
	return repo
}

func (r *mockReviewRepository) Create(_ context.Context, review domain.Review) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.ProjectName == review.ProjectName {
			return repository.ErrDuplicate
		}
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *mockReviewRepository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rv := review
	return &rv, nil
}

func (r *mockReviewRepository) ListByProject(_ context.Context, projectName string) ([]domain.Review, error) {
	r.listProjects = append(r.listProjects, projectName)
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Review
	for _, review := range r.reviews {
		if review.ProjectName == projectName {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *mockReviewRepository) Update(_ context.Context, id string, score int, content string) error {
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	review, ok := r.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	review.Score = score
	review.Content = content
	r.reviews[id] = review
	return nil
}

func (r *mockReviewRepository) Delete(_ context.Context, id string) error {
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

//

type mockSessionStore struct {
	sessions map[string]domain.Session

	createErr error
	creates   int

	touchErr error
	touches  int
	lastTTL  time.Duration

	deletes    int
	deletedIDs []string
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *mockSessionStore) Create(_ context.Context, session domain.Session, ttl time.Duration) error {
	s.creates++
	s.lastTTL = ttl
	if s.createErr != nil {
		return s.createErr
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *mockSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	sess := session
	return &sess, nil
}

func (s *mockSessionStore) Touch(_ context.Context, id string, ttl time.Duration) error {
	s.touches++
	s.lastTTL = ttl
	if s.touchErr != nil {
		return s.touchErr
	}
	if _, ok := s.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (s *mockSessionStore) Delete(_ context.Context, id string) error {
	s.deletes++
	s.deletedIDs = append(s.deletedIDs, id)
	delete(s.sessions, id)
	return nil
}

//

type mockMailer struct {
	err   error
	sent  []port.MailMessage
	calls int
}

func (m *mockMailer) Send(_ context.Context, msg port.MailMessage) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

//

type mockEventPublisher struct {
	err error

	registered []domain.UserRegisteredEvent
	confirmed  []domain.UserConfirmedEvent
	created    []domain.ReviewCreatedEvent
	updated    []domain.ReviewUpdatedEvent
	deleted    []domain.ReviewDeletedEvent
}

func (p *mockEventPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, event)
	return nil
}

func (p *mockEventPublisher) PublishUserConfirmed(_ context.Context, event domain.UserConfirmedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.confirmed = append(p.confirmed, event)
	return nil
}

func (p *mockEventPublisher) PublishReviewCreated(_ context.Context, event domain.ReviewCreatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.created = append(p.created, event)
	return nil
}

func (p *mockEventPublisher) PublishReviewUpdated(_ context.Context, event domain.ReviewUpdatedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.updated = append(p.updated, event)
	return nil
}

func (p *mockEventPublisher) PublishReviewDeleted(_ context.Context, event domain.ReviewDeletedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.deleted = append(p.deleted, event)
	return nil
}

var errStoreDown = errors.New("store unavailable")
