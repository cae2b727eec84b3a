package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/credential"
	"github.com/vibast-solutions/ms-go-memberships/app/entity"
	"github.com/vibast-solutions/ms-go-memberships/app/factory"
	"github.com/vibast-solutions/ms-go-memberships/app/repository"
	"golang.org/x/time/rate"
)

type memberRepository interface {
	Create(ctx context.Context, member *entity.Member, credential *entity.Credential) error
	Update(ctx context.Context, member *entity.Member) error
	FindByID(ctx context.Context, id uint64) (*entity.Member, error)
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)
	FindCredential(ctx context.Context, memberID uint64) (*entity.Credential, error)
	DeleteCascade(ctx context.Context, memberID uint64, now time.Time) (int64, error)
}

type registerRequest interface {
	GetFullName() string
	GetEmail() string
	GetPassword() string
	GetPhone() string
	GetTechArea() string
	GetCurrentCompany() string
}

type updateProfileRequest interface {
	GetFullName() string
	GetEmail() string
	GetPhone() string
	GetTechArea() string
	GetCurrentCompany() string
}

type SignupResult struct {
	Member       *entity.Member
	Subscription *entity.Subscription
}

type MemberService struct {
	memberRepo memberRepository
	planRepo   planRepository
	ledger     *SubscriptionService
	limiter    *rate.Limiter
	logger     logrus.FieldLogger
}

// NewMemberService builds the member service. Authentication attempts are
// limited to ratePerMinute with the given burst; a non-positive rate
// disables the limit.
func NewMemberService(
	memberRepo memberRepository,
	planRepo planRepository,
	ledger *SubscriptionService,
	ratePerMinute int,
	burst int,
) *MemberService {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if ratePerMinute > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), burst)
	}
	return &MemberService{
		memberRepo: memberRepo,
		planRepo:   planRepo,
		ledger:     ledger,
		limiter:    limiter,
		logger:     factory.NewModuleLogger("members"),
	}
}

func (s *MemberService) Register(ctx context.Context, req registerRequest, now time.Time) (*entity.Member, error) {
	fullName := strings.TrimSpace(req.GetFullName())
	email, err := normalizeEmail(req.GetEmail())
	if err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidRequest)
	}
	if len(req.GetPassword()) < 8 {
		return nil, fmt.Errorf("%w: password must have at least 8 characters", ErrInvalidRequest)
	}

	hash, salt, err := credential.Hash(req.GetPassword())
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	member := &entity.Member{
		FullName:       fullName,
		Email:          email,
		Phone:          strings.TrimSpace(req.GetPhone()),
		TechArea:       strings.TrimSpace(req.GetTechArea()),
		CurrentCompany: strings.TrimSpace(req.GetCurrentCompany()),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.memberRepo.Create(ctx, member, &entity.Credential{PasswordHash: hash, Salt: salt}); err != nil {
		return nil, translateCreateError(err, "email already registered")
	}

	s.logger.WithField("member_id", member.ID).Info("Member registered")
	return member, nil
}

// Signup registers the member and subscribes them to planID. The plan is
// checked before the member row is written.
func (s *MemberService) Signup(ctx context.Context, req registerRequest, planID uint64, now time.Time) (*SignupResult, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, storeError(err)
	}
	if plan == nil || !plan.Active {
		return nil, fmt.Errorf("%w: plan %d", ErrNotFound, planID)
	}

	member, err := s.Register(ctx, req, now)
	if err != nil {
		return nil, err
	}
	subscription, err := s.ledger.Subscribe(ctx, member.ID, planID, now)
	if err != nil {
		return nil, err
	}
	return &SignupResult{Member: member, Subscription: subscription}, nil
}

// Authenticate checks the email and password pair. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *MemberService) Authenticate(ctx context.Context, email, password string) (*entity.Member, error) {
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}

	email = strings.ToLower(strings.TrimSpace(email))
	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError(err)
	}
	if member == nil {
		return nil, ErrInvalidCredentials
	}

	stored, err := s.memberRepo.FindCredential(ctx, member.ID)
	if err != nil {
		return nil, storeError(err)
	}
	if stored == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := credential.Verify(password, stored.PasswordHash, stored.Salt)
	if err != nil {
		s.logger.WithError(err).WithField("member_id", member.ID).Error("Stored credential is unreadable")
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return member, nil
}

func (s *MemberService) GetMember(ctx context.Context, id uint64) (*entity.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if member == nil {
		return nil, fmt.Errorf("%w: member %d", ErrNotFound, id)
	}
	return member, nil
}

// UpdateProfile overwrites the non-empty fields of the request.
func (s *MemberService) UpdateProfile(ctx context.Context, memberID uint64, req updateProfileRequest, now time.Time) (*entity.Member, error) {
	member, err := s.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.GetFullName()); v != "" {
		member.FullName = v
	}
	if strings.TrimSpace(req.GetEmail()) != "" {
		email, err := normalizeEmail(req.GetEmail())
		if err != nil {
			return nil, err
		}
		member.Email = email
	}
	if v := strings.TrimSpace(req.GetPhone()); v != "" {
		member.Phone = v
	}
	if v := strings.TrimSpace(req.GetTechArea()); v != "" {
		member.TechArea = v
	}
	if v := strings.TrimSpace(req.GetCurrentCompany()); v != "" {
		member.CurrentCompany = v
	}
	member.UpdatedAt = now.UTC()

	if err := s.memberRepo.Update(ctx, member); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, memberID)
		default:
			return nil, storeError(err)
		}
	}
	return member, nil
}

// DeleteAccount cancels the member's active subscriptions and removes the
// member with every dependent record in one transaction. Benefit usage
// counters are not given back.
func (s *MemberService) DeleteAccount(ctx context.Context, memberID uint64, now time.Time) error {
	cancelled, err := s.memberRepo.DeleteCascade(ctx, memberID, now.UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: member %d", ErrNotFound, memberID)
		}
		s.logger.WithError(err).WithField("member_id", memberID).Error("Delete account failed")
		return storeError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"member_id":               memberID,
		"cancelled_subscriptions": cancelled,
	}).Info("Member account deleted")
	return nil
}

func normalizeEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidRequest)
	}
	return email, nil
}
