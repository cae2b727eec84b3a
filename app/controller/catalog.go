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

// CatalogController serves plans, benefits, events and service stats.
type CatalogController struct {
	catalog *service.CatalogService
	clock   service.Clock
	logger  logrus.FieldLogger
}

func NewCatalogController(catalog *service.CatalogService, clock service.Clock) *CatalogController {
	return &CatalogController{
		catalog: catalog,
		clock:   clock,
		logger:  factory.NewModuleLogger("catalog-controller"),
	}
}

func (c *CatalogController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *CatalogController) ListPlans(ctx echo.Context) error {
	items, err := c.catalog.ListPlans(ctx.Request().Context())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List plans")
	}
	return ctx.JSON(http.StatusOK, &types.ListPlansResponse{Plans: mapper.PlansToProto(items)})
}

func (c *CatalogController) GetPlan(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalog.GetPlan(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get plan")
	}
	return ctx.JSON(http.StatusOK, &types.PlanResponse{Plan: mapper.PlanToProto(item)})
}

func (c *CatalogController) CreatePlan(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewCreatePlanRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalog.CreatePlan(ctx.Request().Context(), req, c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Create plan")
	}
	return ctx.JSON(http.StatusCreated, &types.PlanResponse{Plan: mapper.PlanToProto(item)})
}

func (c *CatalogController) ListPlanBenefits(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewListPlanBenefitsRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.catalog.ListBenefitsForPlan(ctx.Request().Context(), req.GetPlanId(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List plan benefits")
	}
	return ctx.JSON(http.StatusOK, &types.ListBenefitsResponse{Benefits: mapper.BenefitsToProto(items)})
}

func (c *CatalogController) GetBenefit(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalog.GetBenefit(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get benefit")
	}
	return ctx.JSON(http.StatusOK, &types.BenefitResponse{Benefit: mapper.BenefitToProto(item)})
}

func (c *CatalogController) FindBenefitByCode(ctx echo.Context) error {
	item, err := c.catalog.FindBenefitByCode(ctx.Request().Context(), ctx.QueryParam("code"))
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Find benefit")
	}
	return ctx.JSON(http.StatusOK, &types.BenefitResponse{Benefit: mapper.BenefitToProto(item)})
}

func (c *CatalogController) CreateBenefit(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewCreateBenefitRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalog.CreateBenefit(ctx.Request().Context(), req, c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Create benefit")
	}
	return ctx.JSON(http.StatusCreated, &types.BenefitResponse{Benefit: mapper.BenefitToProto(item)})
}

func (c *CatalogController) ListUpcomingEventos(ctx echo.Context) error {
	items, err := c.catalog.ListUpcomingEventos(ctx.Request().Context(), c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "List eventos")
	}
	return ctx.JSON(http.StatusOK, &types.ListEventosResponse{Eventos: mapper.EventosToProto(items)})
}

func (c *CatalogController) GetEvento(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewIdRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalog.GetEvento(ctx.Request().Context(), req.GetId())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Get evento")
	}
	return ctx.JSON(http.StatusOK, &types.EventoResponse{Evento: mapper.EventoToProto(item)})
}

func (c *CatalogController) CreateEvento(ctx echo.Context) error {
	req, err := parseRequest(ctx, types.NewCreateEventoRequestFromContext)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.catalog.CreateEvento(ctx.Request().Context(), req, c.clock.Now())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Create evento")
	}
	return ctx.JSON(http.StatusCreated, &types.EventoResponse{Evento: mapper.EventoToProto(item)})
}

func (c *CatalogController) Stats(ctx echo.Context) error {
	stats, err := c.catalog.Stats(ctx.Request().Context())
	if err != nil {
		return writeServiceError(ctx, factory.LoggerWithContext(c.logger, ctx), err, "Stats")
	}
	return ctx.JSON(http.StatusOK, &types.StatsResponse{Stats: mapper.StatsToProto(stats)})
}
