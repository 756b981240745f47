package billing

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
	api.GET("/patients/:id/billing", h.PatientBills, mw...)
}

func (h *Handler) RegisterAdminRoutes(admin *echo.Group, mw ...echo.MiddlewareFunc) {
	admin.GET("/billing", h.ListBills, mw...)
	admin.POST("/billing", h.CreateBill, mw...)
	admin.GET("/billing/:id", h.GetBill, mw...)
	admin.PUT("/billing/:id", h.UpdateBill, mw...)
	admin.DELETE("/billing/:id", h.DeleteBill, mw...)
}

func (h *Handler) CreateBill(c echo.Context) error {
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	id, err := h.svc.CreateBill(c.Request().Context(), f)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"bill_id": id})
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.svc.GetBill(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBills(c echo.Context) error {
	items, err := h.svc.ListBills(c.Request().Context())
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateBill(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	if err := h.svc.UpdateBill(c.Request().Context(), id, f); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Bill updated"})
}

func (h *Handler) DeleteBill(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBill(c.Request().Context(), id); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Bill deleted"})
}

func (h *Handler) PatientBills(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.PatientBills(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}
