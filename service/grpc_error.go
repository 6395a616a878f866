package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorCodeToGRPCCode maps service error codes to gRPC status codes.
func errorCodeToGRPCCode(code string) codes.Code {
	switch code {
	case ErrBadParameter, ErrInvalidCellID, ErrInvalidRange:
		return codes.InvalidArgument
	case ErrEntityNotFound:
		return codes.NotFound
	case ErrForbidden:
		return codes.PermissionDenied
	case ErrConflict:
		return codes.AlreadyExists
	case ErrCycleDetected:
		return codes.FailedPrecondition
	case ErrRemoteUnavailable:
		return codes.Unavailable
	case ErrInternalServerError:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// ErrorToGRPC converts an error to a gRPC status error. The status message
// is prefixed with the taxonomy code ("code: message") so clients can
// rebuild the exact service error; other errors become codes.Unknown.
func ErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return status.Error(errorCodeToGRPCCode(svcErr.Code), svcErr.Code+": "+svcErr.Message)
	}
	return status.Error(codes.Unknown, "internal error")
}

// FromGRPCError rebuilds a ServiceError from a status error carrying a
// taxonomy code prefix. Statuses without a recognizable code fall back to
// a code derived from the gRPC code; transport-level failures (Unavailable,
// DeadlineExceeded, Canceled without a prefix) are returned unchanged so
// the retry wrapper treats them as retryable.
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	if code, msg, found := strings.Cut(st.Message(), ": "); found && KnownErrorCode(code) {
		return NewServiceError(code, msg, err)
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return NewBadParameterError(st.Message(), err)
	case codes.NotFound:
		return NewEntityNotFoundError(st.Message(), err)
	case codes.PermissionDenied:
		return NewForbiddenError(st.Message(), err)
	case codes.AlreadyExists:
		return NewConflictError(st.Message(), err)
	case codes.Internal:
		return NewServiceError(ErrInternalServerError, st.Message(), err)
	default:
		return err
	}
}

// ErrorToGRPCInterceptor returns a unary server interceptor that converts
// handler errors to gRPC status errors and logs them for diagnostics.
func ErrorToGRPCInterceptor(logger log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			var svcErr *ServiceError
			if errors.As(err, &svcErr) {
				level.Info(logger).Log(
					"msg", "gRPC handler error",
					"method", info.FullMethod,
					"error_code", svcErr.Code,
					"error_message", svcErr.Message,
				)
			} else {
				level.Error(logger).Log(
					"msg", "gRPC handler error",
					"method", info.FullMethod,
					"err", err,
				)
			}
			err = ErrorToGRPC(err)
		}
		return resp, err
	}
}
