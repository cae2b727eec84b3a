package grpc

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/container"
	"github.com/vibast-solutions/ms-go-memberships/app/mapper"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	types.UnimplementedMembershipsServiceServer
	catalog     *service.CatalogService
	ledger      *service.SubscriptionService
	members     *service.MemberService
	tickets     *service.TicketService
	redemptions *service.RedemptionService
	payments    *service.PaymentService
	clock       service.Clock
}

func NewServer(services *container.Services, clock service.Clock) *Server {
	return &Server{
		catalog:     services.Catalog,
		ledger:      services.Ledger,
		members:     services.Members,
		tickets:     services.Tickets,
		redemptions: services.Redemptions,
		payments:    services.Payments,
		clock:       clock,
	}
}

// statusForError maps a service error onto a grpc status. Store and
// unexpected failures are logged and reported without detail.
func statusForError(l logrus.FieldLogger, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, service.ErrEligibility):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrAlreadyRedeemed):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrInactive),
		errors.Is(err, service.ErrExpired):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrCapacity),
		errors.Is(err, service.ErrQuotaExceeded),
		errors.Is(err, service.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		l.WithError(err).Error(action + " failed")
		return status.Error(codes.Unavailable, "service unavailable")
	default:
		l.WithError(err).Error(action + " failed")
		return status.Error(codes.Internal, "internal server error")
	}
}

type validatable interface {
	Validate() error
}

func invalid(l logrus.FieldLogger, req validatable, action string) error {
	if err := req.Validate(); err != nil {
		l.WithError(err).Debug(action + " validation failed")
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func (s *Server) ListPlans(ctx context.Context, _ *types.ListPlansRequest) (*types.ListPlansResponse, error) {
	items, err := s.catalog.ListPlans(ctx)
	if err != nil {
		return nil, statusForError(loggerWithContext(ctx), err, "List plans")
	}
	return &types.ListPlansResponse{Plans: mapper.PlansToProto(items)}, nil
}

func (s *Server) GetPlan(ctx context.Context, req *types.IdRequest) (*types.PlanResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get plan"); err != nil {
		return nil, err
	}
	item, err := s.catalog.GetPlan(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get plan")
	}
	return &types.PlanResponse{Plan: mapper.PlanToProto(item)}, nil
}

func (s *Server) CreatePlan(ctx context.Context, req *types.CreatePlanRequest) (*types.PlanResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Create plan"); err != nil {
		return nil, err
	}
	item, err := s.catalog.CreatePlan(ctx, req, s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Create plan")
	}
	return &types.PlanResponse{Plan: mapper.PlanToProto(item)}, nil
}

func (s *Server) ListPlanBenefits(ctx context.Context, req *types.ListPlanBenefitsRequest) (*types.ListBenefitsResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "List plan benefits"); err != nil {
		return nil, err
	}
	items, err := s.catalog.ListBenefitsForPlan(ctx, req.GetPlanId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "List plan benefits")
	}
	return &types.ListBenefitsResponse{Benefits: mapper.BenefitsToProto(items)}, nil
}

func (s *Server) GetBenefit(ctx context.Context, req *types.IdRequest) (*types.BenefitResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get benefit"); err != nil {
		return nil, err
	}
	item, err := s.catalog.GetBenefit(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get benefit")
	}
	return &types.BenefitResponse{Benefit: mapper.BenefitToProto(item)}, nil
}

func (s *Server) CreateBenefit(ctx context.Context, req *types.CreateBenefitRequest) (*types.BenefitResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Create benefit"); err != nil {
		return nil, err
	}
	item, err := s.catalog.CreateBenefit(ctx, req, s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Create benefit")
	}
	return &types.BenefitResponse{Benefit: mapper.BenefitToProto(item)}, nil
}

func (s *Server) ListUpcomingEventos(ctx context.Context, _ *types.ListUpcomingEventosRequest) (*types.ListEventosResponse, error) {
	items, err := s.catalog.ListUpcomingEventos(ctx, s.clock.Now())
	if err != nil {
		return nil, statusForError(loggerWithContext(ctx), err, "List upcoming eventos")
	}
	return &types.ListEventosResponse{Eventos: mapper.EventosToProto(items)}, nil
}

func (s *Server) GetEvento(ctx context.Context, req *types.IdRequest) (*types.EventoResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get evento"); err != nil {
		return nil, err
	}
	item, err := s.catalog.GetEvento(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get evento")
	}
	return &types.EventoResponse{Evento: mapper.EventoToProto(item)}, nil
}

func (s *Server) CreateEvento(ctx context.Context, req *types.CreateEventoRequest) (*types.EventoResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Create evento"); err != nil {
		return nil, err
	}
	item, err := s.catalog.CreateEvento(ctx, req, s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Create evento")
	}
	return &types.EventoResponse{Evento: mapper.EventoToProto(item)}, nil
}

func (s *Server) GetStats(ctx context.Context, _ *types.GetStatsRequest) (*types.StatsResponse, error) {
	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return nil, statusForError(loggerWithContext(ctx), err, "Get stats")
	}
	return &types.StatsResponse{Stats: mapper.StatsToProto(stats)}, nil
}

func (s *Server) RegisterMember(ctx context.Context, req *types.RegisterMemberRequest) (*types.MemberResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Register member"); err != nil {
		return nil, err
	}
	member, err := s.members.Register(ctx, req, s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Register member")
	}
	return &types.MemberResponse{Member: mapper.MemberToProto(member)}, nil
}

func (s *Server) Signup(ctx context.Context, req *types.SignupRequest) (*types.SignupResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Signup"); err != nil {
		return nil, err
	}
	result, err := s.members.Signup(ctx, req, req.GetPlanId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Signup")
	}
	return &types.SignupResponse{
		Member:       mapper.MemberToProto(result.Member),
		Subscription: mapper.SubscriptionToProto(result.Subscription),
	}, nil
}

func (s *Server) Authenticate(ctx context.Context, req *types.AuthenticateRequest) (*types.MemberResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Authenticate"); err != nil {
		return nil, err
	}
	member, err := s.members.Authenticate(ctx, req.GetEmail(), req.GetPassword())
	if err != nil {
		return nil, statusForError(l, err, "Authenticate")
	}
	return &types.MemberResponse{Member: mapper.MemberToProto(member)}, nil
}

func (s *Server) GetMember(ctx context.Context, req *types.IdRequest) (*types.MemberResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get member"); err != nil {
		return nil, err
	}
	member, err := s.members.GetMember(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get member")
	}
	return &types.MemberResponse{Member: mapper.MemberToProto(member)}, nil
}

func (s *Server) UpdateMember(ctx context.Context, req *types.UpdateMemberRequest) (*types.MemberResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Update member"); err != nil {
		return nil, err
	}
	member, err := s.members.UpdateProfile(ctx, req.GetId(), req, s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Update member")
	}
	return &types.MemberResponse{Member: mapper.MemberToProto(member)}, nil
}

func (s *Server) DeleteMember(ctx context.Context, req *types.IdRequest) (*types.MessageResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Delete member"); err != nil {
		return nil, err
	}
	if err := s.members.DeleteAccount(ctx, req.GetId(), s.clock.Now()); err != nil {
		return nil, statusForError(l, err, "Delete member")
	}
	return &types.MessageResponse{Message: "member deleted"}, nil
}

func (s *Server) GetActiveSubscription(ctx context.Context, req *types.MemberScopedRequest) (*types.SubscriptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get active subscription"); err != nil {
		return nil, err
	}
	item, err := s.ledger.ActiveSubscription(ctx, req.GetMemberId())
	if err != nil {
		return nil, statusForError(l, err, "Get active subscription")
	}
	if item == nil {
		return nil, status.Error(codes.NotFound, "no active subscription")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)}, nil
}

func (s *Server) Subscribe(ctx context.Context, req *types.SubscribeRequest) (*types.SubscriptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Subscribe"); err != nil {
		return nil, err
	}
	item, err := s.ledger.Subscribe(ctx, req.GetMemberId(), req.GetPlanId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Subscribe")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)}, nil
}

func (s *Server) GetSubscription(ctx context.Context, req *types.IdRequest) (*types.SubscriptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get subscription"); err != nil {
		return nil, err
	}
	item, err := s.ledger.GetSubscription(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get subscription")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)}, nil
}

func (s *Server) ListSubscriptions(ctx context.Context, req *types.MemberScopedRequest) (*types.ListSubscriptionsResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "List subscriptions"); err != nil {
		return nil, err
	}
	items, err := s.ledger.ListSubscriptions(ctx, req.GetMemberId())
	if err != nil {
		return nil, statusForError(l, err, "List subscriptions")
	}
	return &types.ListSubscriptionsResponse{Subscriptions: mapper.SubscriptionsToProto(items)}, nil
}

func (s *Server) RenewSubscription(ctx context.Context, req *types.IdRequest) (*types.SubscriptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Renew subscription"); err != nil {
		return nil, err
	}
	item, err := s.ledger.Renew(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Renew subscription")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)}, nil
}

func (s *Server) ChangePlan(ctx context.Context, req *types.ChangePlanRequest) (*types.SubscriptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Change plan"); err != nil {
		return nil, err
	}
	item, err := s.ledger.ChangePlan(ctx, req.GetId(), req.GetPlanId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Change plan")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)}, nil
}

func (s *Server) CancelSubscription(ctx context.Context, req *types.IdRequest) (*types.SubscriptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Cancel subscription"); err != nil {
		return nil, err
	}
	item, err := s.ledger.Cancel(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Cancel subscription")
	}
	return &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)}, nil
}

func (s *Server) PurchaseTicket(ctx context.Context, req *types.PurchaseTicketRequest) (*types.TicketResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Purchase ticket"); err != nil {
		return nil, err
	}
	item, err := s.tickets.Purchase(ctx, req.GetMemberId(), req.GetEventoId(), req.GetSeat(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Purchase ticket")
	}
	return &types.TicketResponse{Ticket: mapper.TicketToProto(item)}, nil
}

func (s *Server) GetTicket(ctx context.Context, req *types.IdRequest) (*types.TicketResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get ticket"); err != nil {
		return nil, err
	}
	item, err := s.tickets.GetTicket(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get ticket")
	}
	return &types.TicketResponse{Ticket: mapper.TicketToProto(item)}, nil
}

func (s *Server) ListTickets(ctx context.Context, req *types.MemberScopedRequest) (*types.ListTicketsResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "List tickets"); err != nil {
		return nil, err
	}
	items, err := s.tickets.ListTickets(ctx, req.GetMemberId())
	if err != nil {
		return nil, statusForError(l, err, "List tickets")
	}
	return &types.ListTicketsResponse{Tickets: mapper.TicketsToProto(items)}, nil
}

func (s *Server) ValidateTicket(ctx context.Context, req *types.IdRequest) (*types.ValidateTicketResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Validate ticket"); err != nil {
		return nil, err
	}
	valid, err := s.tickets.ValidateTicket(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Validate ticket")
	}
	item, err := s.tickets.GetTicket(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get ticket")
	}
	return &types.ValidateTicketResponse{Valid: valid, Ticket: mapper.TicketToProto(item)}, nil
}

func (s *Server) ValidateTicketCode(ctx context.Context, req *types.CodeRequest) (*types.ValidateTicketResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Validate ticket code"); err != nil {
		return nil, err
	}
	item, valid, err := s.tickets.ValidateTicketCode(ctx, req.GetCode(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Validate ticket code")
	}
	return &types.ValidateTicketResponse{Valid: valid, Ticket: mapper.TicketToProto(item)}, nil
}

func (s *Server) CanRedeem(ctx context.Context, req *types.IdRequest) (*types.AvailabilityResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Benefit availability"); err != nil {
		return nil, err
	}
	benefit, ok, err := s.redemptions.CanRedeem(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Benefit availability")
	}
	return mapper.AvailabilityToProto(benefit, ok), nil
}

func (s *Server) RedeemBenefit(ctx context.Context, req *types.RedeemBenefitRequest) (*types.RedeemBenefitResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Redeem benefit"); err != nil {
		return nil, err
	}
	result, err := s.redemptions.Redeem(ctx, req.GetMemberId(), req.GetBenefitId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Redeem benefit")
	}
	return &types.RedeemBenefitResponse{
		Redemption: mapper.RedemptionToProto(result.Redemption),
		Benefit:    mapper.BenefitToProto(result.Benefit),
	}, nil
}

func (s *Server) GetRedemption(ctx context.Context, req *types.IdRequest) (*types.RedemptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get redemption"); err != nil {
		return nil, err
	}
	item, err := s.redemptions.GetRedemption(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get redemption")
	}
	return &types.RedemptionResponse{Redemption: mapper.RedemptionToProto(item)}, nil
}

func (s *Server) ListRedemptions(ctx context.Context, req *types.MemberScopedRequest) (*types.ListRedemptionsResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "List redemptions"); err != nil {
		return nil, err
	}
	items, err := s.redemptions.ListRedemptions(ctx, req.GetMemberId())
	if err != nil {
		return nil, statusForError(l, err, "List redemptions")
	}
	return &types.ListRedemptionsResponse{Redemptions: mapper.RedemptionsToProto(items)}, nil
}

func (s *Server) ConsumeRedemption(ctx context.Context, req *types.IdRequest) (*types.ConsumeRedemptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Consume redemption"); err != nil {
		return nil, err
	}
	consumed, err := s.redemptions.ConsumeRedemption(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Consume redemption")
	}
	item, err := s.redemptions.GetRedemption(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get redemption")
	}
	return &types.ConsumeRedemptionResponse{Consumed: consumed, Redemption: mapper.RedemptionToProto(item)}, nil
}

func (s *Server) ConsumeRedemptionCode(ctx context.Context, req *types.CodeRequest) (*types.ConsumeRedemptionResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Consume redemption code"); err != nil {
		return nil, err
	}
	item, consumed, err := s.redemptions.ConsumeRedemptionCode(ctx, req.GetCode(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Consume redemption code")
	}
	return &types.ConsumeRedemptionResponse{Consumed: consumed, Redemption: mapper.RedemptionToProto(item)}, nil
}

func (s *Server) CreatePayment(ctx context.Context, req *types.CreatePaymentRequest) (*types.PaymentResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Create payment"); err != nil {
		return nil, err
	}
	item, err := s.payments.Create(ctx, req, s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Create payment")
	}
	return &types.PaymentResponse{Payment: mapper.PaymentToProto(item)}, nil
}

func (s *Server) GetPayment(ctx context.Context, req *types.IdRequest) (*types.PaymentResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Get payment"); err != nil {
		return nil, err
	}
	item, err := s.payments.GetPayment(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Get payment")
	}
	return &types.PaymentResponse{Payment: mapper.PaymentToProto(item)}, nil
}

func (s *Server) ListPayments(ctx context.Context, req *types.MemberScopedRequest) (*types.ListPaymentsResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "List payments"); err != nil {
		return nil, err
	}
	items, err := s.payments.ListPayments(ctx, req.GetMemberId())
	if err != nil {
		return nil, statusForError(l, err, "List payments")
	}
	return &types.ListPaymentsResponse{Payments: mapper.PaymentsToProto(items)}, nil
}

func (s *Server) ProcessPayment(ctx context.Context, req *types.IdRequest) (*types.PaymentResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Process payment"); err != nil {
		return nil, err
	}
	item, err := s.payments.Process(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Process payment")
	}
	return &types.PaymentResponse{Payment: mapper.PaymentToProto(item)}, nil
}

func (s *Server) FailPayment(ctx context.Context, req *types.IdRequest) (*types.PaymentResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Fail payment"); err != nil {
		return nil, err
	}
	item, err := s.payments.Fail(ctx, req.GetId(), s.clock.Now())
	if err != nil {
		return nil, statusForError(l, err, "Fail payment")
	}
	return &types.PaymentResponse{Payment: mapper.PaymentToProto(item)}, nil
}

func (s *Server) RefundPayment(ctx context.Context, req *types.IdRequest) (*types.PaymentResponse, error) {
	l := loggerWithContext(ctx)
	if err := invalid(l, req, "Refund payment"); err != nil {
		return nil, err
	}
	item, err := s.payments.Refund(ctx, req.GetId())
	if err != nil {
		return nil, statusForError(l, err, "Refund payment")
	}
	return &types.PaymentResponse{Payment: mapper.PaymentToProto(item)}, nil
}
