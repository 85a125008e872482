package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	pb "github.com/dmitrijs2005/mochamagic/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// GetRewards answers a rewards query in process. The call goes through the
// same token check and handler as a remote one, so it fails the same way.
func (s *GRPCServer) GetRewards(ctx context.Context, token string) (*models.RemoteRewards, error) {
	ctx = metadata.NewIncomingContext(ctx, metadata.Pairs(common.AccessTokenHeaderName, token))
	info := &grpc.UnaryServerInfo{Server: s, FullMethod: protectedPrefix + "Get"}

	resp, err := s.accessTokenInterceptor(ctx, &emptypb.Empty{}, info, func(ctx context.Context, req any) (any, error) {
		return s.Get(ctx, req.(*emptypb.Empty))
	})
	if err != nil {
		return nil, err
	}

	points, count, err := pb.ParseRewardsStruct(resp.(*structpb.Struct))
	if err != nil {
		return nil, fmt.Errorf("failed to decode rewards response: %w", err)
	}
	return &models.RemoteRewards{RewardPoints: points, TransactionsCount: count}, nil
}
