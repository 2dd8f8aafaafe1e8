package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo"
)

// DefaultDismissAfter is how long clients keep a status message on screen.
const DefaultDismissAfter = 3 * time.Second

// Status values of a StatusEnvelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusEnvelope is the body of every success or error message sent to
// clients.
type StatusEnvelope struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismiss_after_ms"`
}

// NewStatusEnvelope creates a StatusEnvelope that dismisses after the
// default delay.
func NewStatusEnvelope(status, message string) StatusEnvelope {
	return StatusEnvelope{
		Status:         status,
		Message:        message,
		DismissAfterMs: DefaultDismissAfter.Milliseconds(),
	}
}

// RespondSuccess writes a success envelope.
func RespondSuccess(c echo.Context, code int, message string) error {
	return c.JSON(code, NewStatusEnvelope(StatusSuccess, message))
}

// RespondError writes an error envelope.
func RespondError(c echo.Context, code int, message string) error {
	return c.JSON(code, NewStatusEnvelope(StatusError, message))
}

// HTTPErrorHandler renders errors escaping handlers as error envelopes.
// Errors other than *echo.HTTPError become a generic 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		slog.Error(
			"failed to handle request",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = RespondError(c, code, message)
	}
	if err != nil {
		slog.Error("failed to send error response", "error", err)
	}
}
