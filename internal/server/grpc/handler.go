package grpc

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/rpc"
	"github.com/dmitrijs2005/accountkeeper/internal/server/models"
)

func (s *GRPCServer) CreateAccount(ctx context.Context, _ *rpc.CreateAccountRequest) (*rpc.CreateAccountResponse, error) {
	username, password, err := s.accounts.CreateAccount(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.CreateAccountResponse{Username: username, Password: password}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, _ *rpc.ListAccountsRequest) (*rpc.ListAccountsResponse, error) {
	views, err := s.accounts.ListActiveAccounts(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]rpc.Account, 0, len(views))
	for _, v := range views {
		out = append(out, rpc.Account{Username: v.Username, Password: v.Password, IsDeleted: v.IsDeleted})
	}
	return &rpc.ListAccountsResponse{Accounts: out}, nil
}

func (s *GRPCServer) CheckCredentials(ctx context.Context, req *rpc.CheckCredentialsRequest) (*rpc.CheckCredentialsResponse, error) {
	if err := s.accounts.VerifyCredentials(ctx, req.Username, req.Password); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.CheckCredentialsResponse{Success: true}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	ok, token, err := s.accounts.Authenticate(ctx, req.Username, req.Password, models.ParseAuthMethod(req.Method))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.LoginResponse{Success: ok, Token: token}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *rpc.DeleteAccountRequest) (*rpc.DeleteAccountResponse, error) {
	if err := s.accounts.DeleteAccount(ctx, req.Username); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.DeleteAccountResponse{}, nil
}
