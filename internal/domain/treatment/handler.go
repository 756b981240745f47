package treatment

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
	api.POST("/treatments", h.CreateTreatment, mw...)
	api.GET("/patients/:id/treatments", h.PatientTreatments, mw...)
}

func (h *Handler) RegisterAdminRoutes(admin *echo.Group, mw ...echo.MiddlewareFunc) {
	admin.GET("/treatments", h.ListTreatments, mw...)
	admin.DELETE("/treatments/:id", h.DeleteTreatment, mw...)
}

func (h *Handler) CreateTreatment(c echo.Context) error {
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	id, err := h.svc.CreateTreatment(c.Request().Context(), f)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"treatment_id": id})
}

func (h *Handler) ListTreatments(c echo.Context) error {
	items, err := h.svc.ListTreatments(c.Request().Context())
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) PatientTreatments(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.PatientTreatments(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DeleteTreatment(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTreatment(c.Request().Context(), id); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Treatment deleted"})
}
