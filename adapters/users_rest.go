package adapters

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
)

// UsersRESTClient talks to a remote Users service over its REST binding.
type UsersRESTClient struct {
	restClient
}

var _ interfaces.Users = (*UsersRESTClient)(nil)

// NewUsersRESTClient creates a client for the service behind endpointURI
// (the announced ".../rest" base).
func NewUsersRESTClient(endpointURI string) *UsersRESTClient {
	return &UsersRESTClient{restClient: newRESTClient(endpointURI)}
}

func (c *UsersRESTClient) CreateUser(ctx context.Context, user domain.User) (string, error) {
	var userID string
	err := c.call(ctx, http.MethodPost, "/users", nil, user, &userID)
	return userID, err
}

func (c *UsersRESTClient) GetUser(ctx context.Context, userID, password string) (domain.User, error) {
	var user domain.User
	err := c.call(ctx, http.MethodGet, "/users/"+url.PathEscape(userID),
		url.Values{"password": {password}}, nil, &user)
	return user, err
}

func (c *UsersRESTClient) UpdateUser(ctx context.Context, userID, password string, user domain.User) (domain.User, error) {
	var previous domain.User
	err := c.call(ctx, http.MethodPut, "/users/"+url.PathEscape(userID),
		url.Values{"password": {password}}, user, &previous)
	return previous, err
}

func (c *UsersRESTClient) DeleteUser(ctx context.Context, userID, password string) (domain.User, error) {
	var removed domain.User
	err := c.call(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID),
		url.Values{"password": {password}}, nil, &removed)
	return removed, err
}

func (c *UsersRESTClient) SearchUsers(ctx context.Context, pattern string) ([]domain.User, error) {
	var users []domain.User
	err := c.call(ctx, http.MethodGet, "/users",
		url.Values{"query": {pattern}}, nil, &users)
	return users, err
}

func (c *UsersRESTClient) VerifyUser(ctx context.Context, userID, password string) (bool, error) {
	var valid bool
	err := c.call(ctx, http.MethodGet, "/users/"+url.PathEscape(userID)+"/verify",
		url.Values{"password": {password}}, nil, &valid)
	return valid, err
}
