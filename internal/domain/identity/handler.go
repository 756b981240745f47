package identity

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
	api.POST("/patients/register", h.RegisterPatient, mw...)
	api.GET("/patients/:id", h.GetPatient, mw...)
	api.GET("/doctors", h.ListDoctors, mw...)
	api.GET("/doctors/:id", h.GetDoctor, mw...)
}

func (h *Handler) RegisterAdminRoutes(admin *echo.Group, mw ...echo.MiddlewareFunc) {
	admin.GET("/patients", h.ListPatients, mw...)
	admin.POST("/patients", h.RegisterPatient, mw...)
	admin.GET("/patients/:id", h.GetPatient, mw...)
	admin.PUT("/patients/:id", h.UpdatePatient, mw...)
	admin.DELETE("/patients/:id", h.DeletePatient, mw...)

	admin.GET("/doctors", h.ListDoctors, mw...)
	admin.POST("/doctors", h.CreateDoctor, mw...)
	admin.GET("/doctors/:id", h.GetDoctor, mw...)
	admin.PUT("/doctors/:id", h.UpdateDoctor, mw...)
	admin.DELETE("/doctors/:id", h.DeleteDoctor, mw...)
}

// -- Patient Handlers --

func (h *Handler) RegisterPatient(c echo.Context) error {
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	id, err := h.svc.RegisterPatient(c.Request().Context(), f)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"patient_id": id})
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	items, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	if err := h.svc.UpdatePatient(c.Request().Context(), id, f); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Patient updated"})
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Patient deleted"})
}

// -- Doctor Handlers --

func (h *Handler) CreateDoctor(c echo.Context) error {
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	id, err := h.svc.CreateDoctor(c.Request().Context(), f)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]int64{"doctor_id": id})
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	items, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	f, err := store.BindFields(c)
	if err != nil {
		return err
	}
	if err := h.svc.UpdateDoctor(c.Request().Context(), id, f); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Doctor updated"})
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := store.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return store.HTTPError(err)
	}
	return c.JSON(http.StatusOK, store.Message{Message: "Doctor deleted"})
}
