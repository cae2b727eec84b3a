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

type SubscriptionController struct {
	ledger *service.SubscriptionService
	clock  service.Clock
	logger logrus.FieldLogger
}

func NewSubscriptionController(ledger *service.SubscriptionService, clock service.Clock) *SubscriptionController {
	return &SubscriptionController{
		ledger: ledger,
		clock:  clock,
		logger: factory.NewModuleLogger("subscriptions-controller"),
	}
}

func (c *SubscriptionController) Subscribe(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewSubscribeRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.ledger.Subscribe(ctx.Request().Context(), req.GetMemberId(), req.GetPlanId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Subscribe")
	}
	return ctx.JSON(http.StatusCreated, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)})
}

func (c *SubscriptionController) GetSubscription(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.ledger.GetSubscription(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get subscription")
	}
	return ctx.JSON(http.StatusOK, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)})
}

func (c *SubscriptionController) ListSubscriptions(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewMemberScopedRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.ledger.ListSubscriptions(ctx.Request().Context(), req.GetMemberId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List subscriptions")
	}
	return ctx.JSON(http.StatusOK, &types.ListSubscriptionsResponse{Subscriptions: mapper.SubscriptionsToProto(items)})
}

func (c *SubscriptionController) Renew(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.ledger.Renew(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Renew subscription")
	}
	return ctx.JSON(http.StatusOK, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)})
}

func (c *SubscriptionController) ChangePlan(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewChangePlanRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.ledger.ChangePlan(ctx.Request().Context(), req.GetId(), req.GetPlanId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Change plan")
	}
	return ctx.JSON(http.StatusOK, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)})
}

func (c *SubscriptionController) Cancel(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.ledger.Cancel(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Cancel subscription")
	}
	return ctx.JSON(http.StatusOK, &types.SubscriptionResponse{Subscription: mapper.SubscriptionToProto(item)})
}
