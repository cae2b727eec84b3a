//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"

	authpb "github.com/vibast-solutions/ms-go-auth/app/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const membershipsAuthMockAddr = "127.0.0.1:38093"

// envKey resolves an API key from the environment, seeding the default so
// the service under test and the mock agree on it.
type envKey struct {
	env      string
	fallback string
}

func (k envKey) value() string {
	if value := strings.TrimSpace(os.Getenv(k.env)); value != "" {
		return value
	}
	return k.fallback
}

func (k envKey) seed() {
	if os.Getenv(k.env) == "" {
		_ = os.Setenv(k.env, k.fallback)
	}
}

var (
	callerKey   = envKey{env: "MEMBERSHIPS_CALLER_API_KEY", fallback: "memberships-caller-key"}
	noAccessKey = envKey{env: "MEMBERSHIPS_NO_ACCESS_API_KEY", fallback: "memberships-no-access-key"}
	appKey      = envKey{env: "MEMBERSHIPS_APP_API_KEY", fallback: "memberships-app-api-key"}
)

func membershipsCallerAPIKey() string   { return callerKey.value() }
func membershipsNoAccessAPIKey() string { return noAccessKey.value() }

type grant struct {
	serviceName string
	allowed     []string
}

type membershipsAuthGRPCServer struct {
	authpb.UnimplementedAuthServiceServer
	grants map[string]grant
}

func newMembershipsAuthGRPCServer() *membershipsAuthGRPCServer {
	return &membershipsAuthGRPCServer{grants: map[string]grant{
		callerKey.value():   {serviceName: "community-portal", allowed: []string{"memberships-service", "events-service"}},
		noAccessKey.value(): {serviceName: "community-portal", allowed: []string{"events-service"}},
	}}
}

func (s *membershipsAuthGRPCServer) ValidateInternalAccess(ctx context.Context, req *authpb.ValidateInternalAccessRequest) (*authpb.ValidateInternalAccessResponse, error) {
	if incomingAPIKey(ctx) != appKey.value() {
		return nil, status.Error(codes.Unauthenticated, "unauthorized caller")
	}

	g, ok := s.grants[strings.TrimSpace(req.GetApiKey())]
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "invalid api key")
	}
	return &authpb.ValidateInternalAccessResponse{
		ServiceName:   g.serviceName,
		AllowedAccess: g.allowed,
	}, nil
}

func incomingAPIKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get("x-api-key")
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func TestMain(m *testing.M) {
	for _, key := range []envKey{callerKey, noAccessKey, appKey} {
		key.seed()
	}

	listener, err := net.Listen("tcp", membershipsAuthMockAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start memberships auth grpc mock: %v\n", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	authpb.RegisterAuthServiceServer(grpcServer, newMembershipsAuthGRPCServer())

	go func() {
		_ = grpcServer.Serve(listener)
	}()

	exitCode := m.Run()

	grpcServer.GracefulStop()
	_ = listener.Close()

	os.Exit(exitCode)
}
