package service

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
)

type mockSubscriptionRepo struct {
	createFn             func(ctx context.Context, subscription *entity.Subscription) error
	findByIDFn           func(ctx context.Context, id uint64) (*entity.Subscription, error)
	findActiveByMemberFn func(ctx context.Context, memberID uint64) (*entity.Subscription, error)
	listByMemberFn       func(ctx context.Context, memberID uint64) ([]*entity.Subscription, error)
	listDueRenewalFn     func(ctx context.Context, now time.Time, limit int) ([]*entity.Subscription, error)
	renewFn              func(ctx context.Context, id uint64, nextBilling, updatedAt time.Time) (bool, error)
	changePlanFn         func(ctx context.Context, id, planID uint64, updatedAt time.Time) (bool, error)
	cancelFn             func(ctx context.Context, id uint64, endedAt time.Time) (bool, error)
	countActiveFn        func(ctx context.Context) (int64, error)
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, subscription *entity.Subscription) error {
	if m.createFn != nil {
		return m.createFn(ctx, subscription)
	}
	return nil
}

func (m *mockSubscriptionRepo) FindByID(ctx context.Context, id uint64) (*entity.Subscription, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) FindActiveByMember(ctx context.Context, memberID uint64) (*entity.Subscription, error) {
	if m.findActiveByMemberFn != nil {
		return m.findActiveByMemberFn(ctx, memberID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) ListByMember(ctx context.Context, memberID uint64) ([]*entity.Subscription, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, memberID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) ListDueRenewal(ctx context.Context, now time.Time, limit int) ([]*entity.Subscription, error) {
	if m.listDueRenewalFn != nil {
		return m.listDueRenewalFn(ctx, now, limit)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) Renew(ctx context.Context, id uint64, nextBilling, updatedAt time.Time) (bool, error) {
	if m.renewFn != nil {
		return m.renewFn(ctx, id, nextBilling, updatedAt)
	}
	return true, nil
}

func (m *mockSubscriptionRepo) ChangePlan(ctx context.Context, id, planID uint64, updatedAt time.Time) (bool, error) {
	if m.changePlanFn != nil {
		return m.changePlanFn(ctx, id, planID, updatedAt)
	}
	return true, nil
}

func (m *mockSubscriptionRepo) Cancel(ctx context.Context, id uint64, endedAt time.Time) (bool, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, id, endedAt)
	}
	return true, nil
}

func (m *mockSubscriptionRepo) CountActive(ctx context.Context) (int64, error) {
	if m.countActiveFn != nil {
		return m.countActiveFn(ctx)
	}
	return 0, nil
}

type mockPlanRepo struct {
	createFn     func(ctx context.Context, plan *entity.Plan) error
	findByIDFn   func(ctx context.Context, id uint64) (*entity.Plan, error)
	listActiveFn func(ctx context.Context) ([]*entity.Plan, error)
	countFn      func(ctx context.Context, activeOnly bool) (int64, error)
}

func (m *mockPlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	if m.createFn != nil {
		return m.createFn(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepo) FindByID(ctx context.Context, id uint64) (*entity.Plan, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &entity.Plan{ID: id, Name: "Connect Bronze", Active: true}, nil
}

func (m *mockPlanRepo) ListActive(ctx context.Context) ([]*entity.Plan, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockPlanRepo) Count(ctx context.Context, activeOnly bool) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx, activeOnly)
	}
	return 0, nil
}

type mockMemberRepo struct {
	createFn         func(ctx context.Context, member *entity.Member, credential *entity.Credential) error
	updateFn         func(ctx context.Context, member *entity.Member) error
	findByIDFn       func(ctx context.Context, id uint64) (*entity.Member, error)
	findByEmailFn    func(ctx context.Context, email string) (*entity.Member, error)
	findCredentialFn func(ctx context.Context, memberID uint64) (*entity.Credential, error)
	deleteCascadeFn  func(ctx context.Context, memberID uint64, now time.Time) (int64, error)
	countFn          func(ctx context.Context) (int64, error)
}

func (m *mockMemberRepo) Create(ctx context.Context, member *entity.Member, credential *entity.Credential) error {
	if m.createFn != nil {
		return m.createFn(ctx, member, credential)
	}
	member.ID = 1
	return nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member *entity.Member) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id uint64) (*entity.Member, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return &entity.Member{ID: id, FullName: "Ana", Email: "ana@example.com"}, nil
}

func (m *mockMemberRepo) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockMemberRepo) FindCredential(ctx context.Context, memberID uint64) (*entity.Credential, error) {
	if m.findCredentialFn != nil {
		return m.findCredentialFn(ctx, memberID)
	}
	return nil, nil
}

func (m *mockMemberRepo) DeleteCascade(ctx context.Context, memberID uint64, now time.Time) (int64, error) {
	if m.deleteCascadeFn != nil {
		return m.deleteCascadeFn(ctx, memberID, now)
	}
	return 0, nil
}

func (m *mockMemberRepo) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockEventoRepo struct {
	createFn       func(ctx context.Context, evento *entity.Evento) error
	findByIDFn     func(ctx context.Context, id uint64) (*entity.Evento, error)
	listUpcomingFn func(ctx context.Context, now time.Time, limit int) ([]*entity.Evento, error)
}

func (m *mockEventoRepo) Create(ctx context.Context, evento *entity.Evento) error {
	if m.createFn != nil {
		return m.createFn(ctx, evento)
	}
	return nil
}

func (m *mockEventoRepo) FindByID(ctx context.Context, id uint64) (*entity.Evento, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockEventoRepo) ListUpcoming(ctx context.Context, now time.Time, limit int) ([]*entity.Evento, error) {
	if m.listUpcomingFn != nil {
		return m.listUpcomingFn(ctx, now, limit)
	}
	return nil, nil
}

type mockTicketRepo struct {
	purchaseFn    func(ctx context.Context, ticket *entity.Ticket) error
	markUsedFn    func(ctx context.Context, id uint64, usedAt time.Time) (bool, error)
	findByIDFn    func(ctx context.Context, id uint64) (*entity.Ticket, error)
	findByCodeFn  func(ctx context.Context, code string) (*entity.Ticket, error)
	listByOwnerFn func(ctx context.Context, ownerID uint64) ([]*entity.Ticket, error)
}

func (m *mockTicketRepo) Purchase(ctx context.Context, ticket *entity.Ticket) error {
	if m.purchaseFn != nil {
		return m.purchaseFn(ctx, ticket)
	}
	ticket.ID = 1
	return nil
}

func (m *mockTicketRepo) MarkUsed(ctx context.Context, id uint64, usedAt time.Time) (bool, error) {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, id, usedAt)
	}
	return true, nil
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id uint64) (*entity.Ticket, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepo) FindByCode(ctx context.Context, code string) (*entity.Ticket, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockTicketRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*entity.Ticket, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

type mockBenefitRepo struct {
	createFn            func(ctx context.Context, benefit *entity.Benefit) error
	findByIDFn          func(ctx context.Context, id uint64) (*entity.Benefit, error)
	findByCodeFn        func(ctx context.Context, code string) (*entity.Benefit, error)
	listActiveForPlanFn func(ctx context.Context, planID uint64, now time.Time) ([]*entity.Benefit, error)
}

func (m *mockBenefitRepo) Create(ctx context.Context, benefit *entity.Benefit) error {
	if m.createFn != nil {
		return m.createFn(ctx, benefit)
	}
	return nil
}

func (m *mockBenefitRepo) FindByID(ctx context.Context, id uint64) (*entity.Benefit, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockBenefitRepo) FindByCode(ctx context.Context, code string) (*entity.Benefit, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockBenefitRepo) ListActiveForPlan(ctx context.Context, planID uint64, now time.Time) ([]*entity.Benefit, error) {
	if m.listActiveForPlanFn != nil {
		return m.listActiveForPlanFn(ctx, planID, now)
	}
	return nil, nil
}

type mockRedemptionRepo struct {
	redeemFn       func(ctx context.Context, redemption *entity.BenefitRedemption, guard repository.RedeemGuard) (*entity.Benefit, error)
	markUsedFn     func(ctx context.Context, id uint64, usedAt time.Time) (bool, error)
	findByIDFn     func(ctx context.Context, id uint64) (*entity.BenefitRedemption, error)
	findByCodeFn   func(ctx context.Context, code string) (*entity.BenefitRedemption, error)
	listByMemberFn func(ctx context.Context, memberID uint64) ([]*entity.BenefitRedemption, error)
}

func (m *mockRedemptionRepo) Redeem(ctx context.Context, redemption *entity.BenefitRedemption, guard repository.RedeemGuard) (*entity.Benefit, error) {
	if m.redeemFn != nil {
		return m.redeemFn(ctx, redemption, guard)
	}
	return nil, nil
}

func (m *mockRedemptionRepo) MarkUsed(ctx context.Context, id uint64, usedAt time.Time) (bool, error) {
	if m.markUsedFn != nil {
		return m.markUsedFn(ctx, id, usedAt)
	}
	return true, nil
}

func (m *mockRedemptionRepo) FindByID(ctx context.Context, id uint64) (*entity.BenefitRedemption, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRedemptionRepo) FindByCode(ctx context.Context, code string) (*entity.BenefitRedemption, error) {
	if m.findByCodeFn != nil {
		return m.findByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockRedemptionRepo) ListByMember(ctx context.Context, memberID uint64) ([]*entity.BenefitRedemption, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, memberID)
	}
	return nil, nil
}

type mockPaymentRepo struct {
	createFn       func(ctx context.Context, payment *entity.Payment) error
	transitionFn   func(ctx context.Context, id uint64, from, to, transactionID string, processedAt *time.Time) (bool, error)
	findByIDFn     func(ctx context.Context, id uint64) (*entity.Payment, error)
	listByMemberFn func(ctx context.Context, memberID uint64) ([]*entity.Payment, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if m.createFn != nil {
		return m.createFn(ctx, payment)
	}
	payment.ID = 1
	return nil
}

func (m *mockPaymentRepo) Transition(ctx context.Context, id uint64, from, to, transactionID string, processedAt *time.Time) (bool, error) {
	if m.transitionFn != nil {
		return m.transitionFn(ctx, id, from, to, transactionID, processedAt)
	}
	return true, nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uint64) (*entity.Payment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPaymentRepo) ListByMember(ctx context.Context, memberID uint64) ([]*entity.Payment, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, memberID)
	}
	return nil, nil
}

type fakeCodes struct {
	ticket     string
	redemption string
	err        error
}

func (f fakeCodes) TicketCode() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.ticket, nil
}

func (f fakeCodes) RedemptionCode() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.redemption, nil
}

type recordedOperation struct {
	operation string
	outcome   string
}

type fakeRecorder struct {
	ops []recordedOperation
}

func (f *fakeRecorder) ObserveOperation(operation, outcome string, _ time.Duration) {
	f.ops = append(f.ops, recordedOperation{operation: operation, outcome: outcome})
}
