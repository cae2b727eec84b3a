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

type PaymentController struct {
	payments *service.PaymentService
	clock    service.Clock
	logger   logrus.FieldLogger
}

func NewPaymentController(payments *service.PaymentService, clock service.Clock) *PaymentController {
	return &PaymentController{
		payments: payments,
		clock:    clock,
		logger:   factory.NewModuleLogger("payments-controller"),
	}
}

func (c *PaymentController) CreatePayment(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewCreatePaymentRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.payments.Create(ctx.Request().Context(), req, c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Create payment")
	}
	return ctx.JSON(http.StatusCreated, &types.PaymentResponse{Payment: mapper.PaymentToProto(item)})
}

func (c *PaymentController) GetPayment(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.payments.GetPayment(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get payment")
	}
	return ctx.JSON(http.StatusOK, &types.PaymentResponse{Payment: mapper.PaymentToProto(item)})
}

func (c *PaymentController) ListPayments(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewMemberScopedRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.payments.ListPayments(ctx.Request().Context(), req.GetMemberId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List payments")
	}
	return ctx.JSON(http.StatusOK, &types.ListPaymentsResponse{Payments: mapper.PaymentsToProto(items)})
}

func (c *PaymentController) Process(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.payments.Process(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Process payment")
	}
	return ctx.JSON(http.StatusOK, &types.PaymentResponse{Payment: mapper.PaymentToProto(item)})
}

func (c *PaymentController) Fail(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.payments.Fail(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Fail payment")
	}
	return ctx.JSON(http.StatusOK, &types.PaymentResponse{Payment: mapper.PaymentToProto(item)})
}

func (c *PaymentController) Refund(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.payments.Refund(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Refund payment")
	}
	return ctx.JSON(http.StatusOK, &types.PaymentResponse{Payment: mapper.PaymentToProto(item)})
}
