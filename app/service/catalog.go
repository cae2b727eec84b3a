package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/factory"
)

type benefitRepository interface {
	Create(ctx context.Context, benefit *entity.Benefit) error
	FindByID(ctx context.Context, id uint64) (*entity.Benefit, error)
	FindByCode(ctx context.Context, discountCode string) (*entity.Benefit, error)
	ListActiveForPlan(ctx context.Context, planID uint64, now time.Time) ([]*entity.Benefit, error)
}

type eventoRepository interface {
	Create(ctx context.Context, evento *entity.Evento) error
	FindByID(ctx context.Context, id uint64) (*entity.Evento, error)
	ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*entity.Evento, error)
}

type memberCounter interface {
	Count(ctx context.Context) (int64, error)
}

type activeSubscriptionLookup interface {
	FindActiveByMember(ctx context.Context, memberID uint64) (*entity.Subscription, error)
	CountActive(ctx context.Context) (int64, error)
}

// PlanCache holds the active plan listing. Cached values are for display
// only and never feed a state transition.
type PlanCache interface {
	GetPlans(ctx context.Context) ([]*entity.Plan, bool, error)
	SetPlans(ctx context.Context, plans []*entity.Plan) error
	InvalidatePlans(ctx context.Context) error
}

type createPlanRequest interface {
	GetName() string
	GetDescription() string
	GetMonthlyPriceCents() int64
	GetHasAnnualPrice() bool
	GetAnnualPriceCents() int64
	GetColorTheme() string
	GetDisplayOrder() int32
}

type createBenefitRequest interface {
	GetTitle() string
	GetDescription() string
	GetProvider() string
	GetDiscountCode() string
	GetDiscountPercentage() int32
	GetRedeemUrl() string
	GetPlanIds() []uint64
	GetHasAvailableQuantity() bool
	GetAvailableQuantity() int32
	GetValidFrom() string
	GetValidUntil() string
}

type createEventoRequest interface {
	GetTitle() string
	GetDescription() string
	GetLocation() string
	GetSpeaker() string
	GetEventType() string
	GetEventDate() string
	GetHasMaxAttendees() bool
	GetMaxAttendees() int32
	GetRequiresMembership() bool
	GetAllowedPlanIds() []uint64
}

type Stats struct {
	Members             int64
	ActiveSubscriptions int64
	ActivePlans         int64
}

// CatalogService answers read queries about plans, benefits and events and
// hosts the eligibility rules shared by tickets and redemptions.
type CatalogService struct {
	planRepo         planRepository
	benefitRepo      benefitRepository
	eventoRepo       eventoRepository
	subscriptionRepo activeSubscriptionLookup
	memberRepo       memberCounter
	cache            PlanCache
	upcomingLimit    int
	logger           logrus.FieldLogger
}

func NewCatalogService(
	planRepo planRepository,
	benefitRepo benefitRepository,
	eventoRepo eventoRepository,
	subscriptionRepo activeSubscriptionLookup,
	memberRepo memberCounter,
	cache PlanCache,
	upcomingLimit int,
) *CatalogService {
	return &CatalogService{
		planRepo:         planRepo,
		benefitRepo:      benefitRepo,
		eventoRepo:       eventoRepo,
		subscriptionRepo: subscriptionRepo,
		memberRepo:       memberRepo,
		cache:            cache,
		upcomingLimit:    upcomingLimit,
		logger:           factory.NewModuleLogger("catalog"),
	}
}

// ListPlans returns active plans by display order, then monthly price.
func (s *CatalogService) ListPlans(ctx context.Context) ([]*entity.Plan, error) {
	if s.cache != nil {
		plans, ok, err := s.cache.GetPlans(ctx)
		if err != nil {
			s.logger.WithError(err).Warn("Plan cache read failed")
		} else if ok {
			return plans, nil
		}
	}

	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	if s.cache != nil {
		if err := s.cache.SetPlans(ctx, plans); err != nil {
			s.logger.WithError(err).Warn("Plan cache write failed")
		}
	}
	return plans, nil
}

func (s *CatalogService) GetPlan(ctx context.Context, id uint64) (*entity.Plan, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: plan %d", ErrNotFound, id)
	}
	return plan, nil
}

func (s *CatalogService) CreatePlan(ctx context.Context, req createPlanRequest, now time.Time) (*entity.Plan, error) {
	name := strings.TrimSpace(req.GetName())
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRequest)
	}
	if req.GetMonthlyPriceCents() < 0 || (req.GetHasAnnualPrice() && req.GetAnnualPriceCents() < 0) {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidRequest)
	}

	plan := &entity.Plan{
		Name:              name,
		Description:       strings.TrimSpace(req.GetDescription()),
		MonthlyPriceCents: req.GetMonthlyPriceCents(),
		ColorTheme:        strings.TrimSpace(req.GetColorTheme()),
		DisplayOrder:      req.GetDisplayOrder(),
		Active:            true,
		CreatedAt:         now.UTC(),
	}
	if req.GetHasAnnualPrice() {
		annual := req.GetAnnualPriceCents()
		plan.AnnualPriceCents = &annual
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, translateCreateError(err, "plan name already exists")
	}
	s.invalidatePlans(ctx)
	return plan, nil
}

// ListBenefitsForPlan returns the plan's active benefits valid at now.
func (s *CatalogService) ListBenefitsForPlan(ctx context.Context, planID uint64, now time.Time) ([]*entity.Benefit, error) {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	items, err := s.benefitRepo.ListActiveForPlan(ctx, planID, now.UTC())
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (s *CatalogService) GetBenefit(ctx context.Context, id uint64) (*entity.Benefit, error) {
	benefit, err := s.benefitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if benefit == nil {
		return nil, fmt.Errorf("%w: benefit %d", ErrNotFound, id)
	}
	return benefit, nil
}

func (s *CatalogService) FindBenefitByCode(ctx context.Context, code string) (*entity.Benefit, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: discount code is required", ErrInvalidRequest)
	}
	benefit, err := s.benefitRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, storeError(err)
	}
	if benefit == nil {
		return nil, fmt.Errorf("%w: benefit %q", ErrNotFound, code)
	}
	return benefit, nil
}

func (s *CatalogService) CreateBenefit(ctx context.Context, req createBenefitRequest, now time.Time) (*entity.Benefit, error) {
	validFrom, err := parseTimestamp("valid_from", req.GetValidFrom())
	if err != nil {
		return nil, err
	}
	validUntil, err := parseTimestamp("valid_until", req.GetValidUntil())
	if err != nil {
		return nil, err
	}
	if validUntil.Before(validFrom) {
		return nil, fmt.Errorf("%w: valid_until must not precede valid_from", ErrInvalidRequest)
	}
	if req.GetDiscountPercentage() < 0 || req.GetDiscountPercentage() > 100 {
		return nil, fmt.Errorf("%w: discount_percentage must be between 0 and 100", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.GetDiscountCode()) == "" || strings.TrimSpace(req.GetTitle()) == "" {
		return nil, fmt.Errorf("%w: title and discount_code are required", ErrInvalidRequest)
	}
	if err := s.requirePlans(ctx, req.GetPlanIds()); err != nil {
		return nil, err
	}

	benefit := &entity.Benefit{
		Title:              strings.TrimSpace(req.GetTitle()),
		Description:        strings.TrimSpace(req.GetDescription()),
		Provider:           strings.TrimSpace(req.GetProvider()),
		DiscountCode:       strings.TrimSpace(req.GetDiscountCode()),
		DiscountPercentage: req.GetDiscountPercentage(),
		RedeemURL:          strings.TrimSpace(req.GetRedeemUrl()),
		PlanIDs:            req.GetPlanIds(),
		ValidFrom:          validFrom,
		ValidUntil:         validUntil,
		Active:             true,
		CreatedAt:          now.UTC(),
	}
	if req.GetHasAvailableQuantity() {
		if req.GetAvailableQuantity() < 0 {
			return nil, fmt.Errorf("%w: available_quantity must not be negative", ErrInvalidRequest)
		}
		available := req.GetAvailableQuantity()
		benefit.AvailableQuantity = &available
	}

	if err := s.benefitRepo.Create(ctx, benefit); err != nil {
		return nil, translateCreateError(err, "discount code already exists")
	}
	return benefit, nil
}

func (s *CatalogService) GetEvento(ctx context.Context, id uint64) (*entity.Evento, error) {
	evento, err := s.eventoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if evento == nil {
		return nil, fmt.Errorf("%w: evento %d", ErrNotFound, id)
	}
	return evento, nil
}

func (s *CatalogService) ListUpcomingEventos(ctx context.Context, now time.Time) ([]*entity.Evento, error) {
	items, err := s.eventoRepo.ListUpcoming(ctx, now.UTC(), s.upcomingLimit)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (s *CatalogService) CreateEvento(ctx context.Context, req createEventoRequest, now time.Time) (*entity.Evento, error) {
	eventDate, err := parseTimestamp("event_date", req.GetEventDate())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.GetTitle()) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	if err := s.requirePlans(ctx, req.GetAllowedPlanIds()); err != nil {
		return nil, err
	}

	eventType := strings.TrimSpace(req.GetEventType())
	if eventType == "" {
		eventType = "Tech Talk"
	}
	evento := &entity.Evento{
		Title:              strings.TrimSpace(req.GetTitle()),
		Description:        strings.TrimSpace(req.GetDescription()),
		Location:           strings.TrimSpace(req.GetLocation()),
		Speaker:            strings.TrimSpace(req.GetSpeaker()),
		EventType:          eventType,
		EventDate:          eventDate,
		RequiresMembership: req.GetRequiresMembership(),
		AllowedPlanIDs:     req.GetAllowedPlanIds(),
		CreatedAt:          now.UTC(),
	}
	if req.GetHasMaxAttendees() {
		if req.GetMaxAttendees() <= 0 {
			return nil, fmt.Errorf("%w: max_attendees must be positive", ErrInvalidRequest)
		}
		capacity := req.GetMaxAttendees()
		evento.MaxAttendees = &capacity
	}

	if err := s.eventoRepo.Create(ctx, evento); err != nil {
		return nil, storeError(err)
	}
	return evento, nil
}

// ActiveSubscription returns the member's active subscription or nil.
func (s *CatalogService) ActiveSubscription(ctx context.Context, memberID uint64) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindActiveByMember(ctx, memberID)
	if err != nil {
		return nil, storeError(err)
	}
	return subscription, nil
}

// CheckEventoAccess applies the event's membership requirement and plan
// allow-list to the member's active subscription, which may be nil.
func CheckEventoAccess(evento *entity.Evento, active *entity.Subscription) error {
	if evento.RequiresMembership && active == nil {
		return fmt.Errorf("%w: event requires an active membership", ErrEligibility)
	}
	if len(evento.AllowedPlanIDs) == 0 {
		return nil
	}
	if active == nil || !evento.AllowsPlan(active.PlanID) {
		return fmt.Errorf("%w: plan does not grant access to this event", ErrEligibility)
	}
	return nil
}

// CheckBenefitAccess requires an active subscription on one of the benefit's
// plans. Benefits without plans are open to every member.
func CheckBenefitAccess(benefit *entity.Benefit, active *entity.Subscription) error {
	if len(benefit.PlanIDs) == 0 {
		return nil
	}
	if active == nil {
		return fmt.Errorf("%w: benefit requires an active membership", ErrEligibility)
	}
	if !benefit.EligiblePlan(active.PlanID) {
		return fmt.Errorf("%w: plan does not include this benefit", ErrEligibility)
	}
	return nil
}

func (s *CatalogService) Stats(ctx context.Context) (*Stats, error) {
	members, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	active, err := s.subscriptionRepo.CountActive(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	plans, err := s.planRepo.Count(ctx, true)
	if err != nil {
		return nil, storeError(err)
	}
	return &Stats{Members: members, ActiveSubscriptions: active, ActivePlans: plans}, nil
}

var defaultPlans = []entity.Plan{
	{Name: "Connect Bronze", Description: "Plano básico para iniciantes em tecnologia", MonthlyPriceCents: 2990, DisplayOrder: 1},
	{Name: "Connect Prata", Description: "Plano intermediário com benefícios exclusivos", MonthlyPriceCents: 5990, DisplayOrder: 2},
	{Name: "Connect Ouro", Description: "Plano premium com acesso completo", MonthlyPriceCents: 9990, DisplayOrder: 3},
}

// SeedDefaultPlans inserts the three default plans when no plan exists yet.
// It returns the number of plans created.
func (s *CatalogService) SeedDefaultPlans(ctx context.Context, now time.Time) (int, error) {
	existing, err := s.planRepo.Count(ctx, false)
	if err != nil {
		return 0, storeError(err)
	}
	if existing > 0 {
		return 0, nil
	}

	created := 0
	for _, item := range defaultPlans {
		plan := item
		plan.Active = true
		plan.CreatedAt = now.UTC()
		if err := s.planRepo.Create(ctx, &plan); err != nil {
			return created, translateCreateError(err, "plan name already exists")
		}
		created++
	}
	s.invalidatePlans(ctx)
	s.logger.WithField("created", created).Info("Default plans seeded")
	return created, nil
}

func (s *CatalogService) requirePlans(ctx context.Context, ids []uint64) error {
	for _, id := range ids {
		if _, err := s.GetPlan(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *CatalogService) invalidatePlans(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePlans(ctx); err != nil {
		s.logger.WithError(err).Warn("Plan cache invalidation failed")
	}
}

func parseTimestamp(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s format", ErrInvalidRequest, field)
	}
	return t.UTC(), nil
}
