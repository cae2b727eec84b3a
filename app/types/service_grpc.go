package types

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const MembershipsServiceName = "memberships.v1.MembershipsService"

func fullMethod(method string) string {
	return "/" + MembershipsServiceName + "/" + method
}

// MembershipsServiceServer is the server API for the memberships service.
type MembershipsServiceServer interface {
	ListPlans(context.Context, *ListPlansRequest) (*ListPlansResponse, error)
	GetPlan(context.Context, *IdRequest) (*PlanResponse, error)
	CreatePlan(context.Context, *CreatePlanRequest) (*PlanResponse, error)
	ListPlanBenefits(context.Context, *ListPlanBenefitsRequest) (*ListBenefitsResponse, error)
	GetBenefit(context.Context, *IdRequest) (*BenefitResponse, error)
	CreateBenefit(context.Context, *CreateBenefitRequest) (*BenefitResponse, error)
	ListUpcomingEventos(context.Context, *ListUpcomingEventosRequest) (*ListEventosResponse, error)
	GetEvento(context.Context, *IdRequest) (*EventoResponse, error)
	CreateEvento(context.Context, *CreateEventoRequest) (*EventoResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*StatsResponse, error)

	RegisterMember(context.Context, *RegisterMemberRequest) (*MemberResponse, error)
	Signup(context.Context, *SignupRequest) (*SignupResponse, error)
	Authenticate(context.Context, *AuthenticateRequest) (*MemberResponse, error)
	GetMember(context.Context, *IdRequest) (*MemberResponse, error)
	UpdateMember(context.Context, *UpdateMemberRequest) (*MemberResponse, error)
	DeleteMember(context.Context, *IdRequest) (*MessageResponse, error)
	GetActiveSubscription(context.Context, *MemberScopedRequest) (*SubscriptionResponse, error)

	Subscribe(context.Context, *SubscribeRequest) (*SubscriptionResponse, error)
	GetSubscription(context.Context, *IdRequest) (*SubscriptionResponse, error)
	ListSubscriptions(context.Context, *MemberScopedRequest) (*ListSubscriptionsResponse, error)
	RenewSubscription(context.Context, *IdRequest) (*SubscriptionResponse, error)
	ChangePlan(context.Context, *ChangePlanRequest) (*SubscriptionResponse, error)
	CancelSubscription(context.Context, *IdRequest) (*SubscriptionResponse, error)

	PurchaseTicket(context.Context, *PurchaseTicketRequest) (*TicketResponse, error)
	GetTicket(context.Context, *IdRequest) (*TicketResponse, error)
	ListTickets(context.Context, *MemberScopedRequest) (*ListTicketsResponse, error)
	ValidateTicket(context.Context, *IdRequest) (*ValidateTicketResponse, error)
	ValidateTicketCode(context.Context, *CodeRequest) (*ValidateTicketResponse, error)

	CanRedeem(context.Context, *IdRequest) (*AvailabilityResponse, error)
	RedeemBenefit(context.Context, *RedeemBenefitRequest) (*RedeemBenefitResponse, error)
	GetRedemption(context.Context, *IdRequest) (*RedemptionResponse, error)
	ListRedemptions(context.Context, *MemberScopedRequest) (*ListRedemptionsResponse, error)
	ConsumeRedemption(context.Context, *IdRequest) (*ConsumeRedemptionResponse, error)
	ConsumeRedemptionCode(context.Context, *CodeRequest) (*ConsumeRedemptionResponse, error)

	CreatePayment(context.Context, *CreatePaymentRequest) (*PaymentResponse, error)
	GetPayment(context.Context, *IdRequest) (*PaymentResponse, error)
	ListPayments(context.Context, *MemberScopedRequest) (*ListPaymentsResponse, error)
	ProcessPayment(context.Context, *IdRequest) (*PaymentResponse, error)
	FailPayment(context.Context, *IdRequest) (*PaymentResponse, error)
	RefundPayment(context.Context, *IdRequest) (*PaymentResponse, error)
}

func unary[Req any, Resp any](method string, call func(MembershipsServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MembershipsServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MembershipsServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var MembershipsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: MembershipsServiceName,
	HandlerType: (*MembershipsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("ListPlans", MembershipsServiceServer.ListPlans),
		unary("GetPlan", MembershipsServiceServer.GetPlan),
		unary("CreatePlan", MembershipsServiceServer.CreatePlan),
		unary("ListPlanBenefits", MembershipsServiceServer.ListPlanBenefits),
		unary("GetBenefit", MembershipsServiceServer.GetBenefit),
		unary("CreateBenefit", MembershipsServiceServer.CreateBenefit),
		unary("ListUpcomingEventos", MembershipsServiceServer.ListUpcomingEventos),
		unary("GetEvento", MembershipsServiceServer.GetEvento),
		unary("CreateEvento", MembershipsServiceServer.CreateEvento),
		unary("GetStats", MembershipsServiceServer.GetStats),
		unary("RegisterMember", MembershipsServiceServer.RegisterMember),
		unary("Signup", MembershipsServiceServer.Signup),
		unary("Authenticate", MembershipsServiceServer.Authenticate),
		unary("GetMember", MembershipsServiceServer.GetMember),
		unary("UpdateMember", MembershipsServiceServer.UpdateMember),
		unary("DeleteMember", MembershipsServiceServer.DeleteMember),
		unary("GetActiveSubscription", MembershipsServiceServer.GetActiveSubscription),
		unary("Subscribe", MembershipsServiceServer.Subscribe),
		unary("GetSubscription", MembershipsServiceServer.GetSubscription),
		unary("ListSubscriptions", MembershipsServiceServer.ListSubscriptions),
		unary("RenewSubscription", MembershipsServiceServer.RenewSubscription),
		unary("ChangePlan", MembershipsServiceServer.ChangePlan),
		unary("CancelSubscription", MembershipsServiceServer.CancelSubscription),
		unary("PurchaseTicket", MembershipsServiceServer.PurchaseTicket),
		unary("GetTicket", MembershipsServiceServer.GetTicket),
		unary("ListTickets", MembershipsServiceServer.ListTickets),
		unary("ValidateTicket", MembershipsServiceServer.ValidateTicket),
		unary("ValidateTicketCode", MembershipsServiceServer.ValidateTicketCode),
		unary("CanRedeem", MembershipsServiceServer.CanRedeem),
		unary("RedeemBenefit", MembershipsServiceServer.RedeemBenefit),
		unary("GetRedemption", MembershipsServiceServer.GetRedemption),
		unary("ListRedemptions", MembershipsServiceServer.ListRedemptions),
		unary("ConsumeRedemption", MembershipsServiceServer.ConsumeRedemption),
		unary("ConsumeRedemptionCode", MembershipsServiceServer.ConsumeRedemptionCode),
		unary("CreatePayment", MembershipsServiceServer.CreatePayment),
		unary("GetPayment", MembershipsServiceServer.GetPayment),
		unary("ListPayments", MembershipsServiceServer.ListPayments),
		unary("ProcessPayment", MembershipsServiceServer.ProcessPayment),
		unary("FailPayment", MembershipsServiceServer.FailPayment),
		unary("RefundPayment", MembershipsServiceServer.RefundPayment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "memberships.v1",
}

func RegisterMembershipsServiceServer(s grpc.ServiceRegistrar, srv MembershipsServiceServer) {
	s.RegisterService(&MembershipsService_ServiceDesc, srv)
}

// MembershipsServiceClient calls the memberships service. Every call is
// forced onto JSONCodec.
type MembershipsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMembershipsServiceClient(cc grpc.ClientConnInterface) *MembershipsServiceClient {
	return &MembershipsServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(JSONCodec{})}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MembershipsServiceClient) ListPlans(ctx context.Context, in *ListPlansRequest, opts ...grpc.CallOption) (*ListPlansResponse, error) {
	return invoke[ListPlansResponse](ctx, c.cc, "ListPlans", in, opts)
}

func (c *MembershipsServiceClient) GetPlan(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*PlanResponse, error) {
	return invoke[PlanResponse](ctx, c.cc, "GetPlan", in, opts)
}

func (c *MembershipsServiceClient) ListPlanBenefits(ctx context.Context, in *ListPlanBenefitsRequest, opts ...grpc.CallOption) (*ListBenefitsResponse, error) {
	return invoke[ListBenefitsResponse](ctx, c.cc, "ListPlanBenefits", in, opts)
}

func (c *MembershipsServiceClient) GetEvento(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*EventoResponse, error) {
	return invoke[EventoResponse](ctx, c.cc, "GetEvento", in, opts)
}

func (c *MembershipsServiceClient) CreateEvento(ctx context.Context, in *CreateEventoRequest, opts ...grpc.CallOption) (*EventoResponse, error) {
	return invoke[EventoResponse](ctx, c.cc, "CreateEvento", in, opts)
}

func (c *MembershipsServiceClient) CreateBenefit(ctx context.Context, in *CreateBenefitRequest, opts ...grpc.CallOption) (*BenefitResponse, error) {
	return invoke[BenefitResponse](ctx, c.cc, "CreateBenefit", in, opts)
}

func (c *MembershipsServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SignupResponse, error) {
	return invoke[SignupResponse](ctx, c.cc, "Signup", in, opts)
}

func (c *MembershipsServiceClient) Authenticate(ctx context.Context, in *AuthenticateRequest, opts ...grpc.CallOption) (*MemberResponse, error) {
	return invoke[MemberResponse](ctx, c.cc, "Authenticate", in, opts)
}

func (c *MembershipsServiceClient) Subscribe(ctx context.Context, in *SubscribeRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	return invoke[SubscriptionResponse](ctx, c.cc, "Subscribe", in, opts)
}

func (c *MembershipsServiceClient) RenewSubscription(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	return invoke[SubscriptionResponse](ctx, c.cc, "RenewSubscription", in, opts)
}

func (c *MembershipsServiceClient) CancelSubscription(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*SubscriptionResponse, error) {
	return invoke[SubscriptionResponse](ctx, c.cc, "CancelSubscription", in, opts)
}

func (c *MembershipsServiceClient) PurchaseTicket(ctx context.Context, in *PurchaseTicketRequest, opts ...grpc.CallOption) (*TicketResponse, error) {
	return invoke[TicketResponse](ctx, c.cc, "PurchaseTicket", in, opts)
}

func (c *MembershipsServiceClient) ValidateTicket(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*ValidateTicketResponse, error) {
	return invoke[ValidateTicketResponse](ctx, c.cc, "ValidateTicket", in, opts)
}

func (c *MembershipsServiceClient) CanRedeem(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*AvailabilityResponse, error) {
	return invoke[AvailabilityResponse](ctx, c.cc, "CanRedeem", in, opts)
}

func (c *MembershipsServiceClient) RedeemBenefit(ctx context.Context, in *RedeemBenefitRequest, opts ...grpc.CallOption) (*RedeemBenefitResponse, error) {
	return invoke[RedeemBenefitResponse](ctx, c.cc, "RedeemBenefit", in, opts)
}

func (c *MembershipsServiceClient) ConsumeRedemption(ctx context.Context, in *IdRequest, opts ...grpc.CallOption) (*ConsumeRedemptionResponse, error) {
	return invoke[ConsumeRedemptionResponse](ctx, c.cc, "ConsumeRedemption", in, opts)
}

// UnimplementedMembershipsServiceServer must be embedded to have forward
// compatible implementations.
type UnimplementedMembershipsServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedMembershipsServiceServer) ListPlans(context.Context, *ListPlansRequest) (*ListPlansResponse, error) {
	return nil, unimplemented("ListPlans")
}
func (UnimplementedMembershipsServiceServer) GetPlan(context.Context, *IdRequest) (*PlanResponse, error) {
	return nil, unimplemented("GetPlan")
}
func (UnimplementedMembershipsServiceServer) CreatePlan(context.Context, *CreatePlanRequest) (*PlanResponse, error) {
	return nil, unimplemented("CreatePlan")
}
func (UnimplementedMembershipsServiceServer) ListPlanBenefits(context.Context, *ListPlanBenefitsRequest) (*ListBenefitsResponse, error) {
	return nil, unimplemented("ListPlanBenefits")
}
func (UnimplementedMembershipsServiceServer) GetBenefit(context.Context, *IdRequest) (*BenefitResponse, error) {
	return nil, unimplemented("GetBenefit")
}
func (UnimplementedMembershipsServiceServer) CreateBenefit(context.Context, *CreateBenefitRequest) (*BenefitResponse, error) {
	return nil, unimplemented("CreateBenefit")
}
func (UnimplementedMembershipsServiceServer) ListUpcomingEventos(context.Context, *ListUpcomingEventosRequest) (*ListEventosResponse, error) {
	return nil, unimplemented("ListUpcomingEventos")
}
func (UnimplementedMembershipsServiceServer) GetEvento(context.Context, *IdRequest) (*EventoResponse, error) {
	return nil, unimplemented("GetEvento")
}
func (UnimplementedMembershipsServiceServer) CreateEvento(context.Context, *CreateEventoRequest) (*EventoResponse, error) {
	return nil, unimplemented("CreateEvento")
}
func (UnimplementedMembershipsServiceServer) GetStats(context.Context, *GetStatsRequest) (*StatsResponse, error) {
	return nil, unimplemented("GetStats")
}
func (UnimplementedMembershipsServiceServer) RegisterMember(context.Context, *RegisterMemberRequest) (*MemberResponse, error) {
	return nil, unimplemented("RegisterMember")
}
func (UnimplementedMembershipsServiceServer) Signup(context.Context, *SignupRequest) (*SignupResponse, error) {
	return nil, unimplemented("Signup")
}
func (UnimplementedMembershipsServiceServer) Authenticate(context.Context, *AuthenticateRequest) (*MemberResponse, error) {
	return nil, unimplemented("Authenticate")
}
func (UnimplementedMembershipsServiceServer) GetMember(context.Context, *IdRequest) (*MemberResponse, error) {
	return nil, unimplemented("GetMember")
}
func (UnimplementedMembershipsServiceServer) UpdateMember(context.Context, *UpdateMemberRequest) (*MemberResponse, error) {
	return nil, unimplemented("UpdateMember")
}
func (UnimplementedMembershipsServiceServer) DeleteMember(context.Context, *IdRequest) (*MessageResponse, error) {
	return nil, unimplemented("DeleteMember")
}
func (UnimplementedMembershipsServiceServer) GetActiveSubscription(context.Context, *MemberScopedRequest) (*SubscriptionResponse, error) {
	return nil, unimplemented("GetActiveSubscription")
}
func (UnimplementedMembershipsServiceServer) Subscribe(context.Context, *SubscribeRequest) (*SubscriptionResponse, error) {
	return nil, unimplemented("Subscribe")
}
func (UnimplementedMembershipsServiceServer) GetSubscription(context.Context, *IdRequest) (*SubscriptionResponse, error) {
	return nil, unimplemented("GetSubscription")
}
func (UnimplementedMembershipsServiceServer) ListSubscriptions(context.Context, *MemberScopedRequest) (*ListSubscriptionsResponse, error) {
	return nil, unimplemented("ListSubscriptions")
}
func (UnimplementedMembershipsServiceServer) RenewSubscription(context.Context, *IdRequest) (*SubscriptionResponse, error) {
	return nil, unimplemented("RenewSubscription")
}
func (UnimplementedMembershipsServiceServer) ChangePlan(context.Context, *ChangePlanRequest) (*SubscriptionResponse, error) {
	return nil, unimplemented("ChangePlan")
}
func (UnimplementedMembershipsServiceServer) CancelSubscription(context.Context, *IdRequest) (*SubscriptionResponse, error) {
	return nil, unimplemented("CancelSubscription")
}
func (UnimplementedMembershipsServiceServer) PurchaseTicket(context.Context, *PurchaseTicketRequest) (*TicketResponse, error) {
	return nil, unimplemented("PurchaseTicket")
}
func (UnimplementedMembershipsServiceServer) GetTicket(context.Context, *IdRequest) (*TicketResponse, error) {
	return nil, unimplemented("GetTicket")
}
func (UnimplementedMembershipsServiceServer) ListTickets(context.Context, *MemberScopedRequest) (*ListTicketsResponse, error) {
	return nil, unimplemented("ListTickets")
}
func (UnimplementedMembershipsServiceServer) ValidateTicket(context.Context, *IdRequest) (*ValidateTicketResponse, error) {
	return nil, unimplemented("ValidateTicket")
}
func (UnimplementedMembershipsServiceServer) ValidateTicketCode(context.Context, *CodeRequest) (*ValidateTicketResponse, error) {
	return nil, unimplemented("ValidateTicketCode")
}
func (UnimplementedMembershipsServiceServer) CanRedeem(context.Context, *IdRequest) (*AvailabilityResponse, error) {
	return nil, unimplemented("CanRedeem")
}
func (UnimplementedMembershipsServiceServer) RedeemBenefit(context.Context, *RedeemBenefitRequest) (*RedeemBenefitResponse, error) {
	return nil, unimplemented("RedeemBenefit")
}
func (UnimplementedMembershipsServiceServer) GetRedemption(context.Context, *IdRequest) (*RedemptionResponse, error) {
	return nil, unimplemented("GetRedemption")
}
func (UnimplementedMembershipsServiceServer) ListRedemptions(context.Context, *MemberScopedRequest) (*ListRedemptionsResponse, error) {
	return nil, unimplemented("ListRedemptions")
}
func (UnimplementedMembershipsServiceServer) ConsumeRedemption(context.Context, *IdRequest) (*ConsumeRedemptionResponse, error) {
	return nil, unimplemented("ConsumeRedemption")
}
func (UnimplementedMembershipsServiceServer) ConsumeRedemptionCode(context.Context, *CodeRequest) (*ConsumeRedemptionResponse, error) {
	return nil, unimplemented("ConsumeRedemptionCode")
}
func (UnimplementedMembershipsServiceServer) CreatePayment(context.Context, *CreatePaymentRequest) (*PaymentResponse, error) {
	return nil, unimplemented("CreatePayment")
}
func (UnimplementedMembershipsServiceServer) GetPayment(context.Context, *IdRequest) (*PaymentResponse, error) {
	return nil, unimplemented("GetPayment")
}
func (UnimplementedMembershipsServiceServer) ListPayments(context.Context, *MemberScopedRequest) (*ListPaymentsResponse, error) {
	return nil, unimplemented("ListPayments")
}
func (UnimplementedMembershipsServiceServer) ProcessPayment(context.Context, *IdRequest) (*PaymentResponse, error) {
	return nil, unimplemented("ProcessPayment")
}
func (UnimplementedMembershipsServiceServer) FailPayment(context.Context, *IdRequest) (*PaymentResponse, error) {
	return nil, unimplemented("FailPayment")
}
func (UnimplementedMembershipsServiceServer) RefundPayment(context.Context, *IdRequest) (*PaymentResponse, error) {
	return nil, unimplemented("RefundPayment")
}
