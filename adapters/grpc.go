package adapters

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/RjRDRG/sd2021-tp1/rpc"
	"github.com/RjRDRG/sd2021-tp1/service"
)

// grpcClient is the connection plumbing shared by the users and spreadsheets
// document/RPC clients.
type grpcClient struct {
	conn *grpc.ClientConn
}

// newGRPCClient opens a connection for an announced "grpc://host:port"
// endpoint. The connection is lazy; dial failures show up on first call.
func newGRPCClient(endpointURI string) (grpcClient, error) {
	target := strings.TrimPrefix(endpointURI, "grpc://")
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	if err != nil {
		return grpcClient{}, fmt.Errorf("cannot create client for %q: %w", endpointURI, err)
	}
	return grpcClient{conn: conn}, nil
}

// invoke performs one unary exchange under the per-attempt deadline,
// translating status errors back into the service taxonomy. Transport
// failures keep their gRPC code so the retry wrapper retries them.
func (c grpcClient) invoke(ctx context.Context, method string, in, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, ConnectTimeout+ReplyTimeout)
	defer cancel()
	if err := c.conn.Invoke(callCtx, method, in, out); err != nil {
		return service.FromGRPCError(err)
	}
	return nil
}

// Close releases the underlying connection. The factory calls it when a
// cached client is invalidated.
func (c grpcClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
