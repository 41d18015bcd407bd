package rpc

import (
	"context"
	"net"
	"testing"

	"github.com/dwikikusuma/storefront/pkg/authctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const echoService = "storefront.test.Echo"

type echoRequest struct {
	Text string `json:"text"`
}

type echoResponse struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
}

type echoServer interface {
	Echo(context.Context, *echoRequest) (*echoResponse, error)
	Admin(context.Context, *Empty) (*Empty, error)
}

type echoImpl struct{}

func (echoImpl) Echo(ctx context.Context, in *echoRequest) (*echoResponse, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return &echoResponse{Text: in.Text, UserID: p.UserID}, nil
}

func (echoImpl) Admin(ctx context.Context, _ *Empty) (*Empty, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

var echoDesc = grpc.ServiceDesc{
	ServiceName: echoService,
	HandlerType: (*echoServer)(nil),
	Methods: []grpc.MethodDesc{
		Method(echoService, "Echo", echoServer.Echo),
		Method(echoService, "Admin", echoServer.Admin),
	},
}

func dial(t *testing.T) grpc.ClientConnInterface {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(authctx.UnaryServerInterceptor()))
	srv.RegisterService(&echoDesc, echoImpl{})
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(authctx.UnaryClientInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRoundTripCarriesPrincipal(t *testing.T) {
	cc := dial(t)
	ctx := authctx.WithPrincipal(context.Background(), authctx.Principal{UserID: "u1", Role: authctx.RoleUser})

	out, err := Invoke[echoResponse](ctx, cc, echoService, "Echo", &echoRequest{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Text)
	assert.Equal(t, "u1", out.UserID)
}

func TestRequirePrincipalAndAdmin(t *testing.T) {
	cc := dial(t)

	_, err := Invoke[echoResponse](context.Background(), cc, echoService, "Echo", &echoRequest{Text: "hi"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	user := authctx.WithPrincipal(context.Background(), authctx.Principal{UserID: "u1", Role: authctx.RoleUser})
	_, err = Invoke[Empty](user, cc, echoService, "Admin", &Empty{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	admin := authctx.WithPrincipal(context.Background(), authctx.Principal{UserID: "a1", Role: authctx.RoleAdmin})
	_, err = Invoke[Empty](admin, cc, echoService, "Admin", &Empty{})
	assert.NoError(t, err)
}
