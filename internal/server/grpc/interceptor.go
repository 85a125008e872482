package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/common"
	pb "github.com/dmitrijs2005/mochamagic/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const UserIDKey ctxKey = "userID"

var protectedPrefix = "/" + pb.RewardsService_ServiceName + "/"

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !strings.HasPrefix(info.FullMethod, protectedPrefix) {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := s.tokens.Verify(accessToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		s.logger.Warn(ctx, "rejected token", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	ctx = context.WithValue(ctx, UserIDKey, userID)

	return handler(ctx, req)
}

func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok
}
