// Package accountv1 defines the storefront.account.v1.AccountService
// messages, server interface, service descriptor and client.
package accountv1

import (
	"context"

	"github.com/dwikikusuma/storefront/pkg/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "storefront.account.v1.AccountService"

type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	CreatedAtUnix int64  `json:"createdAt"`
}

type UserResponse struct {
	User User `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type AccountServiceServer interface {
	Register(context.Context, *RegisterRequest) (*UserResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*UserResponse, error)
	GetUser(context.Context, *GetUserRequest) (*UserResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Method(ServiceName, "Register", AccountServiceServer.Register),
		rpc.Method(ServiceName, "Authenticate", AccountServiceServer.Authenticate),
		rpc.Method(ServiceName, "GetUser", AccountServiceServer.GetUser),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

type AccountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) *AccountServiceClient {
	return &AccountServiceClient{cc: cc}
}

func (c *AccountServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return rpc.Invoke[UserResponse](ctx, c.cc, ServiceName, "Register", in, opts...)
}

func (c *AccountServiceClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return rpc.Invoke[UserResponse](ctx, c.cc, ServiceName, "Authenticate", in, opts...)
}

func (c *AccountServiceClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return rpc.Invoke[UserResponse](ctx, c.cc, ServiceName, "GetUser", in, opts...)
}
