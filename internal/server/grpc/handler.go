package grpc

import (
	"context"

	"github.com/dmitrijs2005/mochamagic/internal/common"
	pb "github.com/dmitrijs2005/mochamagic/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Get(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {

	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	all, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load users", "error", err)
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}

	points, found := 0, false
	for _, u := range all {
		if u.ID == userID {
			points, found = u.Rewards, true
			break
		}
	}
	if !found {
		return nil, status.Error(codes.NotFound, common.ErrAccountNotFound.Error())
	}

	entries, err := s.ledger.ForUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "failed to load ledger", "user_id", userID, "error", err)
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}

	s.logger.Debug(ctx, "rewards served", "user_id", userID, "points", points)
	return pb.NewRewardsStruct(points, len(entries)), nil
}
