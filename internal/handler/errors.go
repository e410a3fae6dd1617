package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON envelope of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// APIError carries the status code a handler failure maps to, plus its cause
type APIError struct {
	Code int
	Err  error
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return statusMessage(e.Code)
	}
	return fmt.Sprintf("%s: %v", statusMessage(e.Code), e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func badRequest(err error) error {
	return &APIError{Code: http.StatusBadRequest, Err: err}
}

func notFound(err error) error {
	return &APIError{Code: http.StatusNotFound, Err: err}
}

func unprocessable(err error) error {
	return &APIError{Code: http.StatusUnprocessableEntity, Err: err}
}

func internalError(err error) error {
	return &APIError{Code: http.StatusInternalServerError, Err: err}
}

func statusMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusNotFound:
		return "resource not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	case http.StatusInternalServerError:
		return "internal server error"
	}
	if text := http.StatusText(code); text != "" {
		return strings.ToLower(text)
	}
	return "error"
}

// ErrorHandler renders every error returned by a handler or middleware as an
// ErrorResponse. Anything that is neither an APIError nor an echo.HTTPError is
// an internal server error.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var apiErr *APIError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr):
			code = apiErr.Code
		case errors.As(err, &httpErr):
			code = httpErr.Code
		}

		fields := []zap.Field{
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", code),
			zap.Error(err),
		}
		if code >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Debug("request rejected", fields...)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{
				Success: false,
				Error:   code,
				Message: statusMessage(code),
			})
		}
		if err != nil {
			logger.Error("failed to write error response", zap.Error(err))
		}
	}
}
