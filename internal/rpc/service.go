package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "accountkeeper.v1.AccountService"

const (
	FullMethodCreateAccount    = "/" + ServiceName + "/CreateAccount"
	FullMethodListAccounts     = "/" + ServiceName + "/ListAccounts"
	FullMethodCheckCredentials = "/" + ServiceName + "/CheckCredentials"
	FullMethodLogin            = "/" + ServiceName + "/Login"
	FullMethodDeleteAccount    = "/" + ServiceName + "/DeleteAccount"
)

// AccountServer is implemented by the gRPC server.
type AccountServer interface {
	CreateAccount(context.Context, *CreateAccountRequest) (*CreateAccountResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
	CheckCredentials(context.Context, *CheckCredentialsRequest) (*CheckCredentialsResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	DeleteAccount(context.Context, *DeleteAccountRequest) (*DeleteAccountResponse, error)
}

// RegisterAccountServer registers srv on s.
func RegisterAccountServer(s grpc.ServiceRegistrar, srv AccountServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unaryHandler adapts one AccountServer method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(AccountServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateAccount", Handler: unaryHandler(FullMethodCreateAccount, AccountServer.CreateAccount)},
		{MethodName: "ListAccounts", Handler: unaryHandler(FullMethodListAccounts, AccountServer.ListAccounts)},
		{MethodName: "CheckCredentials", Handler: unaryHandler(FullMethodCheckCredentials, AccountServer.CheckCredentials)},
		{MethodName: "Login", Handler: unaryHandler(FullMethodLogin, AccountServer.Login)},
		{MethodName: "DeleteAccount", Handler: unaryHandler(FullMethodDeleteAccount, AccountServer.DeleteAccount)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "account.proto",
}

// AccountClient calls AccountService over any client connection.
type AccountClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountClient(cc grpc.ClientConnInterface) *AccountClient {
	return &AccountClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AccountClient) CreateAccount(ctx context.Context, in *CreateAccountRequest, opts ...grpc.CallOption) (*CreateAccountResponse, error) {
	return invoke[CreateAccountResponse](ctx, c.cc, FullMethodCreateAccount, in, opts)
}

func (c *AccountClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	return invoke[ListAccountsResponse](ctx, c.cc, FullMethodListAccounts, in, opts)
}

func (c *AccountClient) CheckCredentials(ctx context.Context, in *CheckCredentialsRequest, opts ...grpc.CallOption) (*CheckCredentialsResponse, error) {
	return invoke[CheckCredentialsResponse](ctx, c.cc, FullMethodCheckCredentials, in, opts)
}

func (c *AccountClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, FullMethodLogin, in, opts)
}

func (c *AccountClient) DeleteAccount(ctx context.Context, in *DeleteAccountRequest, opts ...grpc.CallOption) (*DeleteAccountResponse, error) {
	return invoke[DeleteAccountResponse](ctx, c.cc, FullMethodDeleteAccount, in, opts)
}
