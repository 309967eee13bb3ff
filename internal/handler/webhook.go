package handler

import (
	"errors"
	"io"
	"net/http"

	"funnel-billing/internal/service"

	"github.com/labstack/echo/v4"
)

type WebhookHandler struct {
	renewalService service.RenewalService
}

func NewWebhookHandler(renewalService service.RenewalService) *WebhookHandler {
	return &WebhookHandler{
		renewalService: renewalService,
	}
}

// RenewalWebhook acknowledges processed and ignored deliveries with 200.
// Failures return a non-2xx status so the gateway retries.
func (h *WebhookHandler) RenewalWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "read request body")
	}

	result, err := h.renewalService.HandleWebhook(ctx, body)
	if err != nil {
		return renewalHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}

func renewalHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrSubscriptionNotFound), errors.Is(err, service.ErrAddonNotFound), errors.Is(err, service.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, service.ErrInvalidNextPaymentDate), errors.Is(err, service.ErrInvalidRenewalPayload):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "renewal processing failed").SetInternal(err)
	}
}
