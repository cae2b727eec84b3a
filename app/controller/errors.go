package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-memberships/app/service"
	"github.com/vibast-solutions/ms-go-memberships/app/types"
)

// StatusForError maps a service error onto an HTTP status code.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrEligibility):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrAlreadyRedeemed),
		errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, service.ErrExpired):
		return http.StatusGone
	case errors.Is(err, service.ErrCapacity),
		errors.Is(err, service.ErrInactive),
		errors.Is(err, service.ErrQuotaExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}

// writeServiceError hides internal detail for 5xx responses and logs them.
func writeServiceError(ctx echo.Context, logger logrus.FieldLogger, err error, action string) error {
	code := StatusForError(err)
	switch code {
	case http.StatusServiceUnavailable:
		logger.WithError(err).Error(action + " failed")
		return writeError(ctx, code, "service unavailable")
	case http.StatusInternalServerError:
		logger.WithError(err).Error(action + " failed")
		return writeError(ctx, code, "internal server error")
	default:
		return writeError(ctx, code, err.Error())
	}
}

type validatable interface {
	Validate() error
}

var errMalformedRequest = errors.New("invalid request")

// parseRequest runs a request binder and the request's own validation.
// Every error it returns is meant for a 400 response.
func parseRequest[R validatable](ctx echo.Context, parse func(echo.Context) (R, error)) (R, error) {
	req, err := parse(ctx)
	if err != nil {
		return req, errMalformedRequest
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}
