package grpc

// proto.go defines the gRPC server interface derived from
// nidhirakshak/risk/v1/risk.proto. This file serves as a stand-in for
// buf-generated code; once `buf generate` is run, replace it with the
// import from github.com/Light-700/Nidhi-Rakshak/api/gen/go/nidhirakshak/risk/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RiskProfileServiceServer is the server API for RiskProfileService.
type RiskProfileServiceServer interface {
	RecordOutcome(context.Context, *RecordOutcomeRequest) (*RecordOutcomeResponse, error)
	AssessTransaction(context.Context, *AssessTransactionRequest) (*AssessTransactionResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	ValidateTransaction(context.Context, *ValidateTransactionRequest) (*ValidateTransactionResponse, error)
	ResetProfile(context.Context, *ResetProfileRequest) (*ResetProfileResponse, error)
	BlacklistProfile(context.Context, *BlacklistProfileRequest) (*BlacklistProfileResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error)
	mustEmbedUnimplementedRiskProfileServiceServer()
}

// UnimplementedRiskProfileServiceServer provides forward-compatible default implementations.
type UnimplementedRiskProfileServiceServer struct{}

func (UnimplementedRiskProfileServiceServer) RecordOutcome(context.Context, *RecordOutcomeRequest) (*RecordOutcomeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordOutcome not implemented")
}
func (UnimplementedRiskProfileServiceServer) AssessTransaction(context.Context, *AssessTransactionRequest) (*AssessTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessTransaction not implemented")
}
func (UnimplementedRiskProfileServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedRiskProfileServiceServer) ValidateTransaction(context.Context, *ValidateTransactionRequest) (*ValidateTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateTransaction not implemented")
}
func (UnimplementedRiskProfileServiceServer) ResetProfile(context.Context, *ResetProfileRequest) (*ResetProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetProfile not implemented")
}
func (UnimplementedRiskProfileServiceServer) BlacklistProfile(context.Context, *BlacklistProfileRequest) (*BlacklistProfileResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BlacklistProfile not implemented")
}
func (UnimplementedRiskProfileServiceServer) GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStats not implemented")
}
func (UnimplementedRiskProfileServiceServer) mustEmbedUnimplementedRiskProfileServiceServer() {}

// RegisterRiskProfileServiceServer registers the RiskProfileServiceServer with the gRPC server.
func RegisterRiskProfileServiceServer(s *grpclib.Server, srv RiskProfileServiceServer) {
	s.RegisterService(&_RiskProfileService_serviceDesc, srv)
}

var _RiskProfileService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "nidhirakshak.risk.v1.RiskProfileService",
	HandlerType: (*RiskProfileServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RecordOutcome", Handler: _RiskProfileService_RecordOutcome_Handler},
		{MethodName: "AssessTransaction", Handler: _RiskProfileService_AssessTransaction_Handler},
		{MethodName: "GetProfile", Handler: _RiskProfileService_GetProfile_Handler},
		{MethodName: "ValidateTransaction", Handler: _RiskProfileService_ValidateTransaction_Handler},
		{MethodName: "ResetProfile", Handler: _RiskProfileService_ResetProfile_Handler},
		{MethodName: "BlacklistProfile", Handler: _RiskProfileService_BlacklistProfile_Handler},
		{MethodName: "GetStats", Handler: _RiskProfileService_GetStats_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

func _RiskProfileService_RecordOutcome_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RecordOutcomeRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).RecordOutcome(ctx, req)
}

func _RiskProfileService_AssessTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(AssessTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).AssessTransaction(ctx, req)
}

func _RiskProfileService_GetProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetProfileRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).GetProfile(ctx, req)
}

func _RiskProfileService_ValidateTransaction_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ValidateTransactionRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).ValidateTransaction(ctx, req)
}

func _RiskProfileService_ResetProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(ResetProfileRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).ResetProfile(ctx, req)
}

func _RiskProfileService_BlacklistProfile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(BlacklistProfileRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).BlacklistProfile(ctx, req)
}

func _RiskProfileService_GetStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetStatsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(RiskProfileServiceServer).GetStats(ctx, req)
}
