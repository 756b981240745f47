package store

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ParamID reads a positive integer path parameter.
func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// Message is the body of write responses that return no record.
type Message struct {
	Message string `json:"message"`
}
