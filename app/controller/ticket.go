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

type TicketController struct {
	tickets *service.TicketService
	clock   service.Clock
	logger  logrus.FieldLogger
}

func NewTicketController(tickets *service.TicketService, clock service.Clock) *TicketController {
	return &TicketController{
		tickets: tickets,
		clock:   clock,
		logger:  factory.NewModuleLogger("tickets-controller"),
	}
}

func (c *TicketController) Purchase(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewPurchaseTicketRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.tickets.Purchase(ctx.Request().Context(), req.GetMemberId(), req.GetEventoId(), req.GetSeat(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Purchase ticket")
	}
	return ctx.JSON(http.StatusCreated, &types.TicketResponse{Ticket: mapper.TicketToProto(item)})
}

func (c *TicketController) GetTicket(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.tickets.GetTicket(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get ticket")
	}
	return ctx.JSON(http.StatusOK, &types.TicketResponse{Ticket: mapper.TicketToProto(item)})
}

func (c *TicketController) ListTickets(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewMemberScopedRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.tickets.ListTickets(ctx.Request().Context(), req.GetMemberId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List tickets")
	}
	return ctx.JSON(http.StatusOK, &types.ListTicketsResponse{Tickets: mapper.TicketsToProto(items)})
}

// Validate admits the ticket once. Later calls answer valid=false.
func (c *TicketController) Validate(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	valid, err := c.tickets.ValidateTicket(ctx.Request().Context(), req.GetId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Validate ticket")
	}
	item, err := c.tickets.GetTicket(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get ticket")
	}
	return ctx.JSON(http.StatusOK, &types.ValidateTicketResponse{Valid: valid, Ticket: mapper.TicketToProto(item)})
}

func (c *TicketController) ValidateCode(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewCodeRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, valid, err := c.tickets.ValidateTicketCode(ctx.Request().Context(), req.GetCode(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Validate ticket code")
	}
	return ctx.JSON(http.StatusOK, &types.ValidateTicketResponse{Valid: valid, Ticket: mapper.TicketToProto(item)})
}
