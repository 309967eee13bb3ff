package handler

import (
	"errors"
	"net/http"

	"funnel-billing/internal/dto"
	"funnel-billing/internal/entitlement"
	"funnel-billing/internal/middleware"
	"funnel-billing/internal/service"

	"github.com/labstack/echo/v4"
)

type EntitlementHandler struct {
	entitlementService service.EntitlementService
}

func NewEntitlementHandler(entitlementService service.EntitlementService) *EntitlementHandler {
	return &EntitlementHandler{
		entitlementService: entitlementService,
	}
}

func (h *EntitlementHandler) GetEntitlement(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.EntitlementQuery
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	summary, err := h.entitlementService.Summary(ctx, middleware.UserID(c), req.OwnerID, entitlement.Dimension(req.Dimension), req.Usage)
	if err != nil {
		return entitlementHTTPError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

func (h *EntitlementHandler) ListEntitlements(c echo.Context) error {
	ctx := c.Request().Context()

	summaries, err := h.entitlementService.Summaries(ctx, middleware.UserID(c), c.QueryParam("owner_id"))
	if err != nil {
		return entitlementHTTPError(err)
	}

	return c.JSON(http.StatusOK, summaries)
}

func entitlementHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownDimension), errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrOwnerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOwnerForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return err
	}
}
