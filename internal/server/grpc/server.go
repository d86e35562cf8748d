// Package grpc exposes AccountService over gRPC with the protobuf wire
// codec from internal/rpc, a health service and an optional API key check.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/rpc"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

// AccountService is the business logic the handlers call.
type AccountService interface {
	CreateAccount(ctx context.Context) (string, string, error)
	ListActiveAccounts(ctx context.Context) ([]models.AccountView, error)
	VerifyCredentials(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string, method models.AuthMethod) (bool, string, error)
	DeleteAccount(ctx context.Context, username string) error
}

type GRPCServer struct {
	address  string
	accounts AccountService
	apiKey   []byte
	logger   logging.Logger
	health   *health.Server
}

var _ rpc.AccountServer = (*GRPCServer)(nil)

func NewGRPCServer(address string, l logging.Logger, accounts AccountService, apiKey string) *GRPCServer {
	return &GRPCServer{
		address:  address,
		accounts: accounts,
		apiKey:   []byte(apiKey),
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
	}
}

// newServer builds the gRPC server with every service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.apiKeyInterceptor))

	rpc.RegisterAccountServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
