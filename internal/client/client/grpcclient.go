package client

import (
	"context"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	apiKey      string
	conn        *grpc.ClientConn
	accounts    *rpc.AccountClient
	health      healthpb.HealthClient
}

var _ Client = (*GRPCClient)(nil)

func withAPIKey(ctx context.Context, key string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.APIKeyHeaderName, key)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) apiKeyInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.apiKey != "" {
		ctx = withAPIKey(ctx, s.apiKey)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for endpointURL. The connection is made
// lazily on the first call.
func NewGRPCClient(endpointURL, apiKey string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, apiKey: apiKey}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.apiKeyInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.accounts = rpc.NewAccountClient(conn)
	c.health = healthpb.NewHealthClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Ping asks the health service whether AccountService is serving.
func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: rpc.ServiceName})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.GetStatus())
	}
	return nil
}

func (s *GRPCClient) CreateAccount(ctx context.Context) (string, string, error) {
	resp, err := s.accounts.CreateAccount(ctx, &rpc.CreateAccountRequest{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Username, resp.Password, nil
}

func (s *GRPCClient) ListAccounts(ctx context.Context) ([]rpc.Account, error) {
	resp, err := s.accounts.ListAccounts(ctx, &rpc.ListAccountsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Accounts, nil
}

func (s *GRPCClient) CheckCredentials(ctx context.Context, username, password string) error {
	_, err := s.accounts.CheckCredentials(ctx, &rpc.CheckCredentialsRequest{Username: username, Password: password})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, username, password, method string) (string, error) {
	resp, err := s.accounts.Login(ctx, &rpc.LoginRequest{Username: username, Password: password, Method: method})
	if err != nil {
		return "", s.mapError(err)
	}
	if !resp.Success {
		return "", common.ErrInvalidCredentials
	}
	return resp.Token, nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context, username string) error {
	_, err := s.accounts.DeleteAccount(ctx, &rpc.DeleteAccountRequest{Username: username})
	return s.mapError(err)
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return badRequestFromStatus(st)
	case codes.NotFound:
		return common.ErrUserNotFound
	case codes.PermissionDenied:
		return common.ErrUserNotActive
	case codes.Unauthenticated:
		if st.Message() == common.ErrInvalidCredentials.Error() {
			return common.ErrInvalidCredentials
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func badRequestFromStatus(st *status.Status) error {
	e := &BadRequestError{Message: st.Message()}
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			e.Violations = append(e.Violations, FieldViolation{Field: v.GetField(), Description: v.GetDescription()})
		}
	}
	return e
}

