package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	pb "github.com/dmitrijs2005/mochamagic/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const DefaultCallTimeout = 5 * time.Second

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.RewardsServiceClient
	health      healthpb.HealthClient
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// NewRewardsClient prepares a lazily connecting client for endpointURL.
// A non-positive timeout means DefaultCallTimeout.
func NewRewardsClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewRewardsServiceClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: pb.RewardsService_ServiceName})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) GetRewards(ctx context.Context, token string) (*models.RemoteRewards, error) {

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Get(withAccessToken(ctx, token), &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	points, count, err := pb.ParseRewardsStruct(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rewards response: %w", err)
	}

	return &models.RemoteRewards{RewardPoints: points, TransactionsCount: count}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrAccountNotFound
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
