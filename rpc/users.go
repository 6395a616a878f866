package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Full method names of the Users service.
const (
	UsersMethodCreateUser  = "/sheets.Users/CreateUser"
	UsersMethodGetUser     = "/sheets.Users/GetUser"
	UsersMethodUpdateUser  = "/sheets.Users/UpdateUser"
	UsersMethodDeleteUser  = "/sheets.Users/DeleteUser"
	UsersMethodSearchUsers = "/sheets.Users/SearchUsers"
	UsersMethodVerifyUser  = "/sheets.Users/VerifyUser"
)

// UsersServer is the server-side contract of the Users RPC service.
type UsersServer interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error)
	GetUser(ctx context.Context, req *GetUserRequest) (*GetUserResponse, error)
	UpdateUser(ctx context.Context, req *UpdateUserRequest) (*UpdateUserResponse, error)
	DeleteUser(ctx context.Context, req *DeleteUserRequest) (*DeleteUserResponse, error)
	SearchUsers(ctx context.Context, req *SearchUsersRequest) (*SearchUsersResponse, error)
	VerifyUser(ctx context.Context, req *VerifyUserRequest) (*VerifyUserResponse, error)
}

// RegisterUsersServer registers srv on the grpc server under the Users
// service descriptor.
func RegisterUsersServer(s *grpc.Server, srv UsersServer) {
	s.RegisterService(&UsersServiceDesc, srv)
}

func usersHandler[Req any](
	full string,
	call func(srv UsersServer, ctx context.Context, req *Req) (any, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(UsersServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(UsersServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// UsersServiceDesc is the hand-written grpc service descriptor for the
// Users service; requests and responses are plain msgpack documents.
var UsersServiceDesc = grpc.ServiceDesc{
	ServiceName: "sheets.Users",
	HandlerType: (*UsersServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateUser",
			Handler: usersHandler(UsersMethodCreateUser, func(srv UsersServer, ctx context.Context, req *CreateUserRequest) (any, error) {
				return srv.CreateUser(ctx, req)
			}),
		},
		{
			MethodName: "GetUser",
			Handler: usersHandler(UsersMethodGetUser, func(srv UsersServer, ctx context.Context, req *GetUserRequest) (any, error) {
				return srv.GetUser(ctx, req)
			}),
		},
		{
			MethodName: "UpdateUser",
			Handler: usersHandler(UsersMethodUpdateUser, func(srv UsersServer, ctx context.Context, req *UpdateUserRequest) (any, error) {
				return srv.UpdateUser(ctx, req)
			}),
		},
		{
			MethodName: "DeleteUser",
			Handler: usersHandler(UsersMethodDeleteUser, func(srv UsersServer, ctx context.Context, req *DeleteUserRequest) (any, error) {
				return srv.DeleteUser(ctx, req)
			}),
		},
		{
			MethodName: "SearchUsers",
			Handler: usersHandler(UsersMethodSearchUsers, func(srv UsersServer, ctx context.Context, req *SearchUsersRequest) (any, error) {
				return srv.SearchUsers(ctx, req)
			}),
		},
		{
			MethodName: "VerifyUser",
			Handler: usersHandler(UsersMethodVerifyUser, func(srv UsersServer, ctx context.Context, req *VerifyUserRequest) (any, error) {
				return srv.VerifyUser(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sheets/users",
}
