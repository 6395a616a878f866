package adapters

import (
	"context"

	"github.com/RjRDRG/sd2021-tp1/domain"
	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/rpc"
	"github.com/RjRDRG/sd2021-tp1/service"
)

// UsersGRPCClient talks to a remote Users service over its document/RPC
// binding. Every call goes through the retry wrapper.
type UsersGRPCClient struct {
	grpcClient
}

var _ interfaces.Users = (*UsersGRPCClient)(nil)

// NewUsersGRPCClient creates a client for the service behind endpointURI
// (the announced "grpc://host:port").
func NewUsersGRPCClient(endpointURI string) (*UsersGRPCClient, error) {
	gc, err := newGRPCClient(endpointURI)
	if err != nil {
		return nil, err
	}
	return &UsersGRPCClient{grpcClient: gc}, nil
}

func (c *UsersGRPCClient) CreateUser(ctx context.Context, user domain.User) (string, error) {
	resp, err := service.Retry(ctx, func() (*rpc.CreateUserResponse, error) {
		out := new(rpc.CreateUserResponse)
		if err := c.invoke(ctx, rpc.UsersMethodCreateUser, &rpc.CreateUserRequest{User: user}, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

func (c *UsersGRPCClient) GetUser(ctx context.Context, userID, password string) (domain.User, error) {
	resp, err := service.Retry(ctx, func() (*rpc.GetUserResponse, error) {
		out := new(rpc.GetUserResponse)
		if err := c.invoke(ctx, rpc.UsersMethodGetUser, &rpc.GetUserRequest{UserID: userID, Password: password}, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

func (c *UsersGRPCClient) UpdateUser(ctx context.Context, userID, password string, user domain.User) (domain.User, error) {
	resp, err := service.Retry(ctx, func() (*rpc.UpdateUserResponse, error) {
		out := new(rpc.UpdateUserResponse)
		req := &rpc.UpdateUserRequest{UserID: userID, Password: password, User: user}
		if err := c.invoke(ctx, rpc.UsersMethodUpdateUser, req, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

func (c *UsersGRPCClient) DeleteUser(ctx context.Context, userID, password string) (domain.User, error) {
	resp, err := service.Retry(ctx, func() (*rpc.DeleteUserResponse, error) {
		out := new(rpc.DeleteUserResponse)
		if err := c.invoke(ctx, rpc.UsersMethodDeleteUser, &rpc.DeleteUserRequest{UserID: userID, Password: password}, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return resp.User, nil
}

func (c *UsersGRPCClient) SearchUsers(ctx context.Context, pattern string) ([]domain.User, error) {
	resp, err := service.Retry(ctx, func() (*rpc.SearchUsersResponse, error) {
		out := new(rpc.SearchUsersResponse)
		if err := c.invoke(ctx, rpc.UsersMethodSearchUsers, &rpc.SearchUsersRequest{Pattern: pattern}, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *UsersGRPCClient) VerifyUser(ctx context.Context, userID, password string) (bool, error) {
	resp, err := service.Retry(ctx, func() (*rpc.VerifyUserResponse, error) {
		out := new(rpc.VerifyUserResponse)
		if err := c.invoke(ctx, rpc.UsersMethodVerifyUser, &rpc.VerifyUserRequest{UserID: userID, Password: password}, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}
