package scheduling

import (
	"context"
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
	api.POST("/appointments", h.CreateAppointment, mw...)
	api.PUT("/appointments/:id", h.UpdateAppointment, mw...)
	api.DELETE("/appointments/:id", h.CancelAppointment, mw...)
	api.PUT("/appointments/:id/status", h.SetStatus, mw...)

	api.GET("/patients/:id/appointments", h.PatientHistory, mw...)
	api.GET("/doctors/:id/schedule", h.TodaySchedule, mw...)
	api.GET("/doctors/:id/appointments", h.DoctorAppointments, mw...)
}

func (h *Handler) RegisterAdminRoutes(admin *echo.Group, mw ...echo.MiddlewareFunc) {
	admin.GET("/appointments", h.ListAppointments, mw...)
	admin.GET("/appointments/:id", h.GetAppointment, mw...)
	admin.PUT("/appointments/:id", h.AdminUpdateAppointment, mw...)
	admin.DELETE("/appointments/:id", h.DeleteAppointment, mw...)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	id, err := h.svc.CreateAppointment(c.Request().Context(), f)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"appointment_id": id})
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	return h.update(c, h.svc.UpdateAppointment)
}

func (h *Handler) AdminUpdateAppointment(c echo.Context) error {
	return h.update(c, h.svc.AdminUpdateAppointment)
}

func (h *Handler) update(c echo.Context, apply func(ctx context.Context, id int64, f store.Fields) error) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	if err := apply(c.Request().Context(), id, f); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Appointment updated"})
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Cancel(c.Request().Context(), id); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Appointment cancelled"})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "status must be a string")
	}
	if err := h.svc.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Status updated"})
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Appointment deleted"})
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	items, err := h.svc.ListAppointments(c.Request().Context())
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) PatientHistory(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.PatientHistory(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DoctorAppointments(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.DoctorAppointments(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) TodaySchedule(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.TodaySchedule(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}
