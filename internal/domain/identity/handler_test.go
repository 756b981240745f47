package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func jsonRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T (%v)", err, err)
	return he.Code
}

func TestHandler_RegisterPatient(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, `{"first_name":"C","last_name":"D"}`), rec)

	require.NoError(t, h.RegisterPatient(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"patient_id":1}`, rec.Body.String())
}

func TestHandler_RegisterPatient_MissingName(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(jsonRequest(http.MethodPost, `{"first_name":"C"}`), httptest.NewRecorder())

	err := h.RegisterPatient(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestHandler_GetPatient(t *testing.T) {
	h, e := newTestHandler()
	_ = h.RegisterPatient(e.NewContext(jsonRequest(http.MethodPost, `{"first_name":"C","last_name":"D"}`), httptest.NewRecorder()))

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.GetPatient(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(1), got["patient_id"])
	assert.Equal(t, "C", got["first_name"])
	assert.Contains(t, got, "registration_date")
	assert.Nil(t, got["gender"])
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("999")

	err := h.GetPatient(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestHandler_GetPatient_InvalidID(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := h.GetPatient(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestHandler_UpdatePatient(t *testing.T) {
	h, e := newTestHandler()
	_ = h.RegisterPatient(e.NewContext(jsonRequest(http.MethodPost, `{"first_name":"C","last_name":"D"}`), httptest.NewRecorder()))

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, `{"gender":"F"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.UpdatePatient(c))
	assert.JSONEq(t, `{"message":"Patient updated"}`, rec.Body.String())
}

func TestHandler_UpdatePatient_NoFields(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(jsonRequest(http.MethodPut, `{}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.UpdatePatient(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Equal(t, "No update fields provided", err.(*echo.HTTPError).Message)
}

func TestHandler_DeletePatient(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.DeletePatient(c))
	assert.JSONEq(t, `{"message":"Patient deleted"}`, rec.Body.String())
}

func TestHandler_CreateAndListDoctors(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateDoctor(e.NewContext(jsonRequest(http.MethodPost, `{"first_name":"A","last_name":"B","email":"a@b.com"}`), rec)))
	assert.JSONEq(t, `{"doctor_id":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, h.ListDoctors(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))

	var got []Doctor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a@b.com", *got[0].Email)
}

func TestHandler_ListPatients_Empty(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListPatients(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_Routes(t *testing.T) {
	h, e := newTestHandler()
	h.RegisterRoutes(e.Group(""))
	h.RegisterAdminRoutes(e.Group("/admin"))

	have := map[string]bool{}
	for _, r := range e.Routes() {
		have[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /patients/register", "GET /patients/:id", "GET /doctors", "GET /doctors/:id",
		"GET /admin/patients", "POST /admin/patients", "PUT /admin/patients/:id", "DELETE /admin/patients/:id",
		"GET /admin/doctors", "POST /admin/doctors", "PUT /admin/doctors/:id", "DELETE /admin/doctors/:id",
	} {
		assert.True(t, have[want], "missing route %s", want)
	}
}

func TestHandler_RouteMiddleware(t *testing.T) {
	h, e := newTestHandler()
	down := func(echo.HandlerFunc) echo.HandlerFunc {
		return func(echo.Context) error {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
	}
	h.RegisterRoutes(e.Group(""), down)
	h.RegisterAdminRoutes(e.Group("/admin"), down)

	for path, code := range map[string]int{
		"/doctors":          http.StatusServiceUnavailable,
		"/admin/patients/1": http.StatusServiceUnavailable,
		"/clinics":          http.StatusNotFound,
		"/admin/clinics":    http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, code, rec.Code, path)
	}
}

func TestHandler_CreateDoctor_ExperienceOutOfRange(t *testing.T) {
	h, e := newTestHandler()
	err := h.CreateDoctor(e.NewContext(jsonRequest(http.MethodPost,
		`{"first_name":"A","last_name":"B","years_experience":9999999999}`), httptest.NewRecorder()))
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}
