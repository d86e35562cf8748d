package grpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/services"
)

// toStatus maps a service error to a gRPC status. Internal failures are
// logged and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var badRequest *services.BadRequestError

	switch {
	case errors.As(err, &badRequest):
		s.logger.Debug(ctx, "request rejected", "fields", badRequest.Fields())
		return badRequestStatus(badRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, common.ErrUserNotFound):
		return status.Error(codes.NotFound, common.ErrUserNotFound.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrUserNotActive):
		return status.Error(codes.PermissionDenied, common.ErrUserNotActive.Error())
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

func badRequestStatus(e *services.BadRequestError) error {
	st := status.New(codes.InvalidArgument, e.Error())

	details := &errdetails.BadRequest{}
	for _, v := range e.Violations {
		details.FieldViolations = append(details.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Message,
		})
	}

	withDetails, err := st.WithDetails(details)
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}
