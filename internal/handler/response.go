package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/lead-capture/internal/dto"
	middlewarepkg "github.com/octobees/lead-capture/internal/middleware"
)

const notFoundBody = "Not found"

// Error sends {"error": message}.
func Error(c echo.Context, status int, message string) error {
	return ErrorWithDetails(c, status, message, nil)
}

// ErrorWithDetails sends {"error": message, "details": details}; nil details are omitted.
func ErrorWithDetails(c echo.Context, status int, message string, details any) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, dto.ErrorResponse{Error: message, Details: details})
}

// HTTPErrorHandler renders unmatched routes as plain text 404s and every other
// error as a JSON error body.
func HTTPErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		}

		var writeErr error
		switch {
		case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
			if c.Request().Method == http.MethodHead {
				writeErr = c.NoContent(http.StatusNotFound)
			} else {
				writeErr = c.String(http.StatusNotFound, notFoundBody)
			}
		default:
			if status >= http.StatusInternalServerError {
				log.Errorw("unhandled error", "request_id", middlewarepkg.RequestIDFromContext(c), "error", err)
			}
			writeErr = Error(c, status, message)
		}
		if writeErr != nil {
			log.Errorw("write error response", "error", writeErr)
		}
	}
}
