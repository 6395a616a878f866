package handlers

import (
	"context"

	"github.com/go-kit/log"

	"github.com/RjRDRG/sd2021-tp1/interfaces"
	"github.com/RjRDRG/sd2021-tp1/rpc"
)

// UsersGRPCServer exposes a Users service over the document/RPC binding.
type UsersGRPCServer struct {
	users  interfaces.Users
	logger log.Logger
}

var _ rpc.UsersServer = (*UsersGRPCServer)(nil)

// NewUsersGRPCServer creates a new UsersGRPCServer.
func NewUsersGRPCServer(users interfaces.Users, logger log.Logger) *UsersGRPCServer {
	return &UsersGRPCServer{
		users:  users,
		logger: log.WithPrefix(logger, "component", "UsersGRPCServer"),
	}
}

func (h *UsersGRPCServer) CreateUser(ctx context.Context, req *rpc.CreateUserRequest) (*rpc.CreateUserResponse, error) {
	userID, err := h.users.CreateUser(ctx, req.User)
	if err != nil {
		return nil, err
	}
	return &rpc.CreateUserResponse{UserID: userID}, nil
}

func (h *UsersGRPCServer) GetUser(ctx context.Context, req *rpc.GetUserRequest) (*rpc.GetUserResponse, error) {
	user, err := h.users.GetUser(ctx, req.UserID, req.Password)
	if err != nil {
		return nil, err
	}
	return &rpc.GetUserResponse{User: user}, nil
}

func (h *UsersGRPCServer) UpdateUser(ctx context.Context, req *rpc.UpdateUserRequest) (*rpc.UpdateUserResponse, error) {
	previous, err := h.users.UpdateUser(ctx, req.UserID, req.Password, req.User)
	if err != nil {
		return nil, err
	}
	return &rpc.UpdateUserResponse{User: previous}, nil
}

func (h *UsersGRPCServer) DeleteUser(ctx context.Context, req *rpc.DeleteUserRequest) (*rpc.DeleteUserResponse, error) {
	removed, err := h.users.DeleteUser(ctx, req.UserID, req.Password)
	if err != nil {
		return nil, err
	}
	return &rpc.DeleteUserResponse{User: removed}, nil
}

func (h *UsersGRPCServer) SearchUsers(ctx context.Context, req *rpc.SearchUsersRequest) (*rpc.SearchUsersResponse, error) {
	users, err := h.users.SearchUsers(ctx, req.Pattern)
	if err != nil {
		return nil, err
	}
	return &rpc.SearchUsersResponse{Users: users}, nil
}

func (h *UsersGRPCServer) VerifyUser(ctx context.Context, req *rpc.VerifyUserRequest) (*rpc.VerifyUserResponse, error) {
	valid, err := h.users.VerifyUser(ctx, req.UserID, req.Password)
	if err != nil {
		return nil, err
	}
	return &rpc.VerifyUserResponse{Valid: valid}, nil
}
