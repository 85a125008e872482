// Package proto describes the rewards gRPC service. Messages are protobuf
// well-known types, so the service needs no generated message code:
//
//	service RewardsService {
//	  rpc Get(google.protobuf.Empty) returns (google.protobuf.Struct);
//	}
//
// The Struct carries the numeric fields reward_points and transactions_count.
package proto

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	RewardsService_ServiceName        = "mochamagic.rewards.RewardsService"
	RewardsService_Get_FullMethodName = "/mochamagic.rewards.RewardsService/Get"
)

const (
	FieldRewardPoints      = "reward_points"
	FieldTransactionsCount = "transactions_count"
)

// NewRewardsStruct builds the Get response.
func NewRewardsStruct(rewardPoints, transactionsCount int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldRewardPoints:      structpb.NewNumberValue(float64(rewardPoints)),
		FieldTransactionsCount: structpb.NewNumberValue(float64(transactionsCount)),
	}}
}

// ParseRewardsStruct reads a Get response. Missing fields read as zero;
// fields of the wrong kind are an error.
func ParseRewardsStruct(s *structpb.Struct) (rewardPoints, transactionsCount int, err error) {
	if rewardPoints, err = intField(s, FieldRewardPoints); err != nil {
		return 0, 0, err
	}
	if transactionsCount, err = intField(s, FieldTransactionsCount); err != nil {
		return 0, 0, err
	}
	return rewardPoints, transactionsCount, nil
}

func intField(s *structpb.Struct, name string) (int, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("field %s is not a number", name)
	}
	return int(n.NumberValue), nil
}

// RewardsServiceClient is the client API for RewardsService.
type RewardsServiceClient interface {
	Get(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type rewardsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRewardsServiceClient(cc grpc.ClientConnInterface) RewardsServiceClient {
	return &rewardsServiceClient{cc}
}

func (c *rewardsServiceClient) Get(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RewardsService_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RewardsServiceServer is the server API for RewardsService.
type RewardsServiceServer interface {
	Get(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedRewardsServiceServer can be embedded for forward compatibility.
type UnimplementedRewardsServiceServer struct{}

func (UnimplementedRewardsServiceServer) Get(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}

func RegisterRewardsServiceServer(s grpc.ServiceRegistrar, srv RewardsServiceServer) {
	s.RegisterService(&RewardsService_ServiceDesc, srv)
}

func _RewardsService_Get_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RewardsServiceServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: RewardsService_Get_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RewardsServiceServer).Get(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var RewardsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: RewardsService_ServiceName,
	HandlerType: (*RewardsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Get",
			Handler:    _RewardsService_Get_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rewards.proto",
}
