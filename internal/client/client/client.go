// Package client talks to the accountkeeper server. GRPCClient owns the
// connection, attaches the API key to every call and maps gRPC status codes
// to sentinel errors callers can match with errors.Is.
package client

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/rpc"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error
	CreateAccount(ctx context.Context) (username, password string, err error)
	ListAccounts(ctx context.Context) ([]rpc.Account, error)
	CheckCredentials(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password, method string) (token string, err error)
	DeleteAccount(ctx context.Context, username string) error
}
