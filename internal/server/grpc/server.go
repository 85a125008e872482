// Package grpc serves the rewards API: a read-only view of a customer's
// points for holders of a valid session token.
package grpc

import (
	"context"
	"errors"
	"net"

	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/ledger"
	"github.com/dmitrijs2005/mochamagic/internal/client/repositories/users"
	"github.com/dmitrijs2005/mochamagic/internal/logging"
	pb "github.com/dmitrijs2005/mochamagic/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// TokenVerifier resolves a session token to an account id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type GRPCServer struct {
	pb.UnimplementedRewardsServiceServer
	address string
	users   users.Repository
	ledger  ledger.Repository
	tokens  TokenVerifier
	logger  logging.Logger
	health  *health.Server
}

func NewGRPCServer(a string, l logging.Logger, us users.Repository, lr ledger.Repository, tv TokenVerifier) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		ledger:  lr,
		tokens:  tv,
		health:  health.NewServer(),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))

	pb.RegisterRewardsServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(pb.RewardsService_ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}
