package roster

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

func (h *Handler) RegisterRoutes(api *echo.Group, mw ...echo.MiddlewareFunc) {
	api.GET("/doctors/:id/patients", h.DoctorPatients, mw...)
}

func (h *Handler) DoctorPatients(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.DoctorPatients(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}
