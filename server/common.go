package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/esummer9/mykeyword/common"
)

type response struct {
	Data any `json:"data"`
}

func composeResponse(data any) response {
	return response{
		Data: data,
	}
}

// errorStatus maps an application error code to an HTTP status.
func errorStatus(err error) int {
	switch common.ErrorCode(err) {
	case common.NotFound:
		return http.StatusNotFound
	case common.Conflict:
		return http.StatusConflict
	case common.Invalid:
		return http.StatusBadRequest
	case common.NotAuthorized:
		return http.StatusUnauthorized
	case common.NotImplemented:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// newHTTPError wraps err in an echo error carrying msg and the mapped status.
func newHTTPError(err error, msg string) *echo.HTTPError {
	status := errorStatus(err)
	if status != http.StatusInternalServerError {
		msg = common.ErrorMessage(err)
	}
	return echo.NewHTTPError(status, msg).SetInternal(err)
}
