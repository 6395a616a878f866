package service

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RjRDRG/sd2021-tp1/domain"
)

func newTestUsersService() *UsersService {
	return NewUsersService("alpha", NewMemoryUserStore(), log.NewNopLogger())
}

func mustCreateUser(t *testing.T, s *UsersService, name string) string {
	t.Helper()
	id, err := s.CreateUser(context.Background(), domain.User{
		UserID:   name,
		FullName: "Full " + name,
		Email:    name + "@example.org",
		Password: "pw-" + name,
	})
	require.NoError(t, err)
	return id
}

func TestCreateUserQualifiesID(t *testing.T) {
	s := newTestUsersService()

	id := mustCreateUser(t, s, "alice")
	assert.Equal(t, "alice@alpha", id)

	user, err := s.GetUser(context.Background(), id, "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@alpha", user.UserID)
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestUsersService()
	ctx := context.Background()

	tests := []struct {
		name string
		user domain.User
	}{
		{"missing userId", domain.User{FullName: "A", Email: "a@x", Password: "p"}},
		{"missing fullName", domain.User{UserID: "a", Email: "a@x", Password: "p"}},
		{"missing email", domain.User{UserID: "a", FullName: "A", Password: "p"}},
		{"missing password", domain.User{UserID: "a", FullName: "A", Email: "a@x"}},
		{"pre-qualified id", domain.User{UserID: "a@beta", FullName: "A", Email: "a@x", Password: "p"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.CreateUser(ctx, tc.user)
			assert.True(t, IsBadParameterError(err))
		})
	}
}

func TestCreateUserConflict(t *testing.T) {
	s := newTestUsersService()
	mustCreateUser(t, s, "alice")

	_, err := s.CreateUser(context.Background(), domain.User{
		UserID: "alice", FullName: "Other", Email: "o@x", Password: "p",
	})
	assert.True(t, IsConflictError(err))
}

func TestGetUserChecksCredentials(t *testing.T) {
	s := newTestUsersService()
	id := mustCreateUser(t, s, "alice")
	ctx := context.Background()

	_, err := s.GetUser(ctx, id, "wrong")
	assert.True(t, IsForbiddenError(err))

	_, err = s.GetUser(ctx, "nobody@alpha", "pw")
	assert.True(t, IsEntityNotFoundError(err))
}

func TestUpdateUserKeepsEmptyFields(t *testing.T) {
	s := newTestUsersService()
	id := mustCreateUser(t, s, "alice")
	ctx := context.Background()

	previous, err := s.UpdateUser(ctx, id, "pw-alice", domain.User{FullName: "Alice Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Full alice", previous.FullName)

	user, err := s.GetUser(ctx, id, "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", user.FullName)
	assert.Equal(t, "alice@example.org", user.Email)
	assert.Equal(t, "pw-alice", user.Password)
}

func TestUpdateUserPasswordChange(t *testing.T) {
	s := newTestUsersService()
	id := mustCreateUser(t, s, "alice")
	ctx := context.Background()

	_, err := s.UpdateUser(ctx, id, "pw-alice", domain.User{Password: "fresh"})
	require.NoError(t, err)

	_, err = s.GetUser(ctx, id, "pw-alice")
	assert.True(t, IsForbiddenError(err))
	_, err = s.GetUser(ctx, id, "fresh")
	assert.NoError(t, err)
}

func TestUpdateUserRejectsIDChange(t *testing.T) {
	s := newTestUsersService()
	id := mustCreateUser(t, s, "alice")

	_, err := s.UpdateUser(context.Background(), id, "pw-alice", domain.User{UserID: "bob@alpha"})
	assert.True(t, IsBadParameterError(err))
}

func TestDeleteUser(t *testing.T) {
	s := newTestUsersService()
	id := mustCreateUser(t, s, "alice")
	ctx := context.Background()

	_, err := s.DeleteUser(ctx, id, "wrong")
	assert.True(t, IsForbiddenError(err))

	removed, err := s.DeleteUser(ctx, id, "pw-alice")
	require.NoError(t, err)
	assert.Equal(t, id, removed.UserID)

	_, err = s.GetUser(ctx, id, "pw-alice")
	assert.True(t, IsEntityNotFoundError(err))
}

func TestSearchUsersScrubsPasswords(t *testing.T) {
	s := newTestUsersService()
	mustCreateUser(t, s, "alice")
	mustCreateUser(t, s, "bob")
	ctx := context.Background()

	all, err := s.SearchUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, u := range all {
		assert.Empty(t, u.Password)
	}

	some, err := s.SearchUsers(ctx, "ALICE")
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "alice@alpha", some[0].UserID)

	none, err := s.SearchUsers(ctx, "zebra")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestVerifyUser(t *testing.T) {
	s := newTestUsersService()
	id := mustCreateUser(t, s, "alice")
	ctx := context.Background()

	valid, err := s.VerifyUser(ctx, id, "pw-alice")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = s.VerifyUser(ctx, id, "wrong")
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = s.VerifyUser(ctx, "nobody@alpha", "pw")
	assert.True(t, IsEntityNotFoundError(err))
}
