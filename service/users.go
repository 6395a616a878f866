package service

import (
	"context"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
)

// MemoryUserStore is the default interfaces.UserStore, a map guarded by a
// RWMutex. Records live as long as the process.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

var _ interfaces.UserStore = (*MemoryUserStore)(nil)

// NewMemoryUserStore creates an empty in-memory store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]domain.User)}
}

func (s *MemoryUserStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.UserID]; exists {
		return NewConflictError("user already exists", nil)
	}
	s.users[user.UserID] = user
	return nil
}

func (s *MemoryUserStore) Get(_ context.Context, userID string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.users[userID]
	if !exists {
		return domain.User{}, NewEntityNotFoundError("user does not exist", nil)
	}
	return user, nil
}

func (s *MemoryUserStore) Update(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.UserID]; !exists {
		return NewEntityNotFoundError("user does not exist", nil)
	}
	s.users[user.UserID] = user
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[userID]; !exists {
		return NewEntityNotFoundError("user does not exist", nil)
	}
	delete(s.users, userID)
	return nil
}

func (s *MemoryUserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

// UsersService manages the user records of one domain.
type UsersService struct {
	domainID string
	store    interfaces.UserStore
	logger   log.Logger
}

var _ interfaces.Users = (*UsersService)(nil)

// NewUsersService creates the users service for domainID over the given
// store.
func NewUsersService(domainID string, store interfaces.UserStore, logger log.Logger) *UsersService {
	return &UsersService{
		domainID: domainID,
		store:    store,
		logger:   log.WithPrefix(logger, "component", "users_service"),
	}
}

// CreateUser registers a new user. The submitted id is a plain name; the
// stored id is qualified as "name@domain".
func (s *UsersService) CreateUser(ctx context.Context, user domain.User) (string, error) {
	if user.UserID == "" || user.FullName == "" || user.Email == "" || user.Password == "" {
		return "", NewBadParameterError("userId, fullName, email and password are all required", nil)
	}
	if strings.Contains(user.UserID, "@") {
		return "", NewBadParameterError("userId must not contain '@'", nil)
	}

	user.UserID = domain.QualifyUserID(user.UserID, s.domainID)
	if err := s.store.Create(ctx, user); err != nil {
		return "", err
	}

	level.Info(s.logger).Log("msg", "user created", "user", user.UserID)
	return user.UserID, nil
}

// GetUser returns the record after checking the user's own password.
func (s *UsersService) GetUser(ctx context.Context, userID, password string) (domain.User, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if user.Password != password {
		return domain.User{}, NewForbiddenError("password does not match", nil)
	}
	return user, nil
}

// UpdateUser replaces the mutable fields of an existing record, keeping any
// the caller left empty. The previous record is returned. The id itself
// never changes.
func (s *UsersService) UpdateUser(ctx context.Context, userID, password string, update domain.User) (domain.User, error) {
	previous, err := s.GetUser(ctx, userID, password)
	if err != nil {
		return domain.User{}, err
	}
	if update.UserID != "" && update.UserID != userID {
		return domain.User{}, NewBadParameterError("userId cannot be changed", nil)
	}

	next := previous
	if update.FullName != "" {
		next.FullName = update.FullName
	}
	if update.Email != "" {
		next.Email = update.Email
	}
	if update.Password != "" {
		next.Password = update.Password
	}

	if err := s.store.Update(ctx, next); err != nil {
		return domain.User{}, err
	}
	return previous, nil
}

// DeleteUser removes the record after checking the password and returns it.
func (s *UsersService) DeleteUser(ctx context.Context, userID, password string) (domain.User, error) {
	user, err := s.GetUser(ctx, userID, password)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.store.Delete(ctx, userID); err != nil {
		return domain.User{}, err
	}

	level.Info(s.logger).Log("msg", "user deleted", "user", userID)
	return user, nil
}

// SearchUsers returns the users whose full name contains pattern, case
// insensitive. An empty pattern matches everyone. Passwords are scrubbed
// from the result; this operation needs no credentials.
func (s *UsersService) SearchUsers(ctx context.Context, pattern string) ([]domain.User, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(pattern)
	matches := make([]domain.User, 0, len(users))
	for _, user := range users {
		if !strings.Contains(strings.ToLower(user.FullName), needle) {
			continue
		}
		user.Password = ""
		matches = append(matches, user)
	}
	return matches, nil
}

// VerifyUser reports whether the password matches the stored record. An
// absent user is an entity-not-found error, so callers can tell a bad id
// from a bad credential.
func (s *UsersService) VerifyUser(ctx context.Context, userID, password string) (bool, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.Password == password, nil
}
