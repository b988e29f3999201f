package http

import (
	"errors"
	"net/http"

	"valet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps the error taxonomy onto HTTP status codes. LocalSyncError
// is not listed: it accompanies a successful remote write and is reported
// as a warning on a 2xx response.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusUnprocessableEntity, false
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, false
	case errors.Is(err, errs.ErrRemoteWrite):
		return http.StatusBadGateway, true
	default:
		return http.StatusInternalServerError, false
	}
}

func (s *Server) respondError(ctx echo.Context, err error) error {
	code, retryable := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", ctx.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)
	}
	return ctx.JSON(code, Error{
		Code:      code,
		Message:   err.Error(),
		Retryable: retryable,
	})
}

// localSyncWarning splits a handler error into the warning carried by a
// successful response and the error that still has to be reported.
func (s *Server) localSyncWarning(ctx echo.Context, err error) (string, error) {
	if err == nil {
		return "", nil
	}
	var syncErr *errs.LocalSyncError
	if !errors.As(err, &syncErr) {
		return "", err
	}
	s.logger.Warn("local mirror is out of sync",
		zap.String("path", ctx.Path()),
		zap.String("order_id", syncErr.OrderID),
		zap.String("transaction_id", syncErr.TransactionID),
		zap.Error(syncErr.Cause),
	)
	return "The order was updated but the local transaction record could not be synchronized; " +
		"it will be reconciled automatically.", nil
}

// httpErrorHandler renders echo errors (unknown routes, bad path params)
// with the same body as application errors.
func httpErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		} else {
			logger.Error("unhandled error", zap.Error(err))
		}

		if writeErr := ctx.JSON(code, Error{Code: code, Message: message}); writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}
