package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/store"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterAdminRoutes(admin *echo.Group, mw ...echo.MiddlewareFunc) {
	admin.GET("/dashboard", h.Dashboard, mw...)
}

func (h *Handler) Dashboard(c echo.Context) error {
	counts, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, counts)
}
