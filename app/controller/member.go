package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/factory"
	"github.com/vibast-solutions/ms-go-memberships/app/mapper"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/app/types"
)

type MemberController struct {
	members *service.MemberService
	ledger  *service.SubscriptionService
	clock   service.Clock
	logger  logrus.FieldLogger
}

func NewMemberController(members *service.MemberService, ledger *service.SubscriptionService, clock service.Clock) *MemberController {
	return &MemberController{
		members: members,
		ledger:  ledger,
		clock:   clock,
		logger:  factory.NewModuleLogger("members-controller"),
	}
}

func (c *MemberController) Register(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewRegisterMemberRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	member, err := c.members.Register(ctx.Request().Context(), req, c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Register member")
	}
	return ctx.JSON(http.StatusCreated, &types.MemberResponse{Member: mapper.MemberToProto(member)})
}

func (c *MemberController) Signup(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewSignupRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.members.Signup(ctx.Request().Context(), req, req.GetPlanId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Signup")
	}
	return ctx.JSON(http.StatusCreated, &types.SignupResponse{
		Member:       mapper.MemberToProto(result.Member),
		Subscription: mapper.SubscriptionToProto(result.Subscription),
	})
}

func (c *MemberController) Authenticate(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewAuthenticateRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	member, err := c.members.Authenticate(ctx.Request().Context(), req.GetEmail(), req.GetPassword())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Authenticate")
	}
	return ctx.JSON(http.StatusOK, &types.MemberResponse{Member: mapper.MemberToProto(member)})
}

func (c *MemberController) GetMember(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	member, err := c.members.GetMember(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get member")
	}
	return ctx.JSON(http.StatusOK, &types.MemberResponse{Member: mapper.MemberToProto(member)})
}

func (c *MemberController) UpdateMember(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewUpdateMemberRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	member, err := c.members.UpdateProfile(ctx.Request().Context(), req.GetId(), req, c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Update member")
	}
	return ctx.JSON(http.StatusOK, &types.MemberResponse{Member: mapper.MemberToProto(member)})
}

func (c *MemberController) DeleteMember(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.members.DeleteAccount(ctx.Request().Context(), req.GetId(), c.clock.Now()); err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Delete member")
	}
	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Account deleted successfully"})
}

// ActiveSubscription backs the member dashboard.
func (c *MemberController) ActiveSubscription(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewMemberScopedRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.ledger.ActiveSubscription(ctx.Request().Context(), req.GetMemberId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get active subscription")
	}
	if item == nil {
		return writeError(ctx, http.StatusNotFound, "no active subscription")
	}
	return ctx.JSON(http.StatusOK, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)})
}
