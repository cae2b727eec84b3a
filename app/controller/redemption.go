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

type RedemptionController struct {
	redemptions *service.RedemptionService
	clock       service.Clock
	logger      logrus.FieldLogger
}

func NewRedemptionController(redemptions *service.RedemptionService, clock service.Clock) *RedemptionController {
	return &RedemptionController{
		redemptions: redemptions,
		clock:       clock,
		logger:      factory.NewModuleLogger("redemptions-controller"),
	}
}

func (c *RedemptionController) Availability(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	benefit, ok, err := c.redemptions.CanRedeem(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Benefit availability")
	}
	return ctx.JSON(http.StatusOK, mapper.AvailabilityToProto(benefit, ok))
}

func (c *RedemptionController) Redeem(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewRedeemBenefitRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.redemptions.Redeem(ctx.Request().Context(), req.GetMemberId(), req.GetBenefitId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Redeem benefit")
	}
	return ctx.JSON(http.StatusCreated, &types.RedeemBenefitResponse{
		Redemption: mapper.RedemptionToProto(result.Redemption),
		Benefit:    mapper.BenefitToProto(result.Benefit),
	})
}

func (c *RedemptionController) GetRedemption(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.redemptions.GetRedemption(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get redemption")
	}
	return ctx.JSON(http.StatusOK, &types.RedemptionResponse{Redemption: mapper.RedemptionToProto(item)})
}

func (c *RedemptionController) ListRedemptions(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewMemberScopedRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.redemptions.ListRedemptions(ctx.Request().Context(), req.GetMemberId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List redemptions")
	}
	return ctx.JSON(http.StatusOK, &types.ListRedemptionsResponse{Redemptions: mapper.RedemptionsToProto(items)})
}

func (c *RedemptionController) Consume(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	consumed, err := c.redemptions.ConsumeRedemption(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Consume redemption")
	}
	item, err := c.redemptions.GetRedemption(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get redemption")
	}
	return ctx.JSON(http.StatusOK, &types.ConsumeRedemptionResponse{Consumed: consumed, Redemption: mapper.RedemptionToProto(item)})
}

func (c *RedemptionController) ConsumeCode(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewCodeRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, consumed, err := c.redemptions.ConsumeRedemptionCode(ctx.Request().Context(), req.GetCode(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Consume redemption code")
	}
	return ctx.JSON(http.StatusOK, &types.ConsumeRedemptionResponse{Consumed: consumed, Redemption: mapper.RedemptionToProto(item)})
}
