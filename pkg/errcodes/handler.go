package errcodes

import (
	"net/http"

	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/errutils"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

// Handle is an Echo error handler that renders typed errors with their own
// status code. Anything else is reported as an internal server error.
func (h *Handler) Handle(err error, c echo.Context) {
	log := logger.FromEchoContext(c)

	if errutils.IsIgnorableErr(err) {
		log.Err(err).Warn("broken pipe")
		return
	}

	payload := h.payload(err)

	if payload.Error.StatusCode == http.StatusInternalServerError {
		log.Err(err).Error("server error")
	}

	if c.Response().Committed {
		return
	}

	if err := c.JSON(payload.Error.StatusCode, payload); err != nil {
		log.Err(errors.WithStack(err)).Error("error handler json error")
	}
}

func (h *Handler) payload(err error) errorPayload {
	body := errorBody{StatusCode: http.StatusInternalServerError}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		body.StatusCode = he.Code
		if msg, ok := he.Message.(string); ok {
			body.Message = msg
		} else {
			body.Message = http.StatusText(he.Code)
		}
		body.Code = strcase.ToSnake(body.Message)
	}

	var e *Error
	if errors.As(err, &e) {
		body.StatusCode = e.HTTPCode
		body.Code = e.Code
		body.Message = e.Message
	}

	if body.StatusCode == http.StatusInternalServerError && body.Message == "" {
		body.Code = "internal_server_error"
		body.Message = "Internal Server Error"
	}

	return errorPayload{Error: body}
}
