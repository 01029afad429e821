package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"roadside/internal/generated/servers"
	"roadside/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransactionFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	code := statusFor(err)

	message := err.Error()
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message = fmt.Sprint(httpErr.Message)
	}

	switch code {
	case http.StatusServiceUnavailable:
		ctx.Response().Header().Set("Retry-After", "1")
		logger.WarnContext(ctx.Request().Context(), "retryable failure", "path", ctx.Path(), "error", err)
	case http.StatusInternalServerError:
		logger.ErrorContext(ctx.Request().Context(), "request failed", "path", ctx.Path(), "error", err)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// NewErrorHandler renders errors that escape the handlers (routing, binding,
// panics caught by Recover) in the API error shape.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}
		if writeErr := writeError(ctx, logger, err); writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}
