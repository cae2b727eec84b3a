package container

import (
	"database/sql"

	"github.com/vibast-solutions/ms-go-memberships/app/payment"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/app/token"
	"github.com/vibast-solutions/ms-go-memberships/config"
)

// Options carries the optional collaborators. Zero values fall back to the
// manual gateway, random codes, no plan cache and no metrics.
type Options struct {
	Cache    service.PlanCache
	Recorder service.Recorder
	Gateway  payment.Gateway
	Codes    token.Generator
}

type Services struct {
	Catalog     *service.CatalogService
	Ledger      *service.SubscriptionService
	Members     *service.MemberService
	Tickets     *service.TicketService
	Redemptions *service.RedemptionService
	Payments    *service.PaymentService
}

// NewServices wires every repository and service over one database handle.
func NewServices(db *sql.DB, dialect repository.Dialect, cfg config.MembershipConfig, opts Options) *Services {
	if opts.Gateway == nil {
		opts.Gateway = payment.NewManualGateway()
	}
	if opts.Codes == nil {
		opts.Codes = token.NewRandomGenerator()
	}

	memberRepo := repository.NewMemberRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	eventoRepo := repository.NewEventoRepository(db)
	benefitRepo := repository.NewBenefitRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db, dialect)
	paymentRepo := repository.NewPaymentRepository(db)

	ledger := service.NewSubscriptionService(subscriptionRepo, planRepo, memberRepo, cfg, opts.Recorder)

	return &Services{
		Catalog:     service.NewCatalogService(planRepo, benefitRepo, eventoRepo, subscriptionRepo, memberRepo, opts.Cache, cfg.UpcomingEventLimit),
		Ledger:      ledger,
		Members:     service.NewMemberService(memberRepo, planRepo, ledger, cfg.AuthRatePerMinute, cfg.AuthBurst),
		Tickets:     service.NewTicketService(ticketRepo, eventoRepo, subscriptionRepo, memberRepo, opts.Codes, opts.Recorder),
		Redemptions: service.NewRedemptionService(redemptionRepo, benefitRepo, subscriptionRepo, memberRepo, opts.Codes, opts.Recorder),
		Payments:    service.NewPaymentService(paymentRepo, memberRepo, subscriptionRepo, opts.Gateway),
	}
}
