package errcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	NewHandler().Handle(err, e.NewContext(req, rr))
	return rr
}

func TestHandler(t *testing.T) {
	t.Parallel()

	t.Run("typed errors keep their status and code", func(tt *testing.T) {
		rr := handle(tt, errors.WithStack(ReferenceNotFound("Author")))
		assert.Equal(tt, http.StatusNotFound, rr.Code)
		assert.JSONEq(tt, `{"error":{"code":"reference_not_found","message":"Author ID not found.","status_code":404}}`, rr.Body.String())
	})

	t.Run("write failures are client errors", func(tt *testing.T) {
		for _, err := range []error{CreateFailed("Book"), UpdateFailed("Book"), DeleteFailed("Book")} {
			rr := handle(tt, err)
			assert.Equal(tt, http.StatusBadRequest, rr.Code)
		}
	})

	t.Run("echo errors are snake cased", func(tt *testing.T) {
		rr := handle(tt, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))
		assert.Equal(tt, http.StatusMethodNotAllowed, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"code":"method_not_allowed"`)
	})

	t.Run("unknown errors are internal", func(tt *testing.T) {
		rr := handle(tt, errors.New("boom"))
		assert.Equal(tt, http.StatusInternalServerError, rr.Code)
		assert.Contains(tt, rr.Body.String(), `"message":"Internal Server Error"`)
	})
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := errors.WithStack(NotFound("Author"))
	assert.True(t, errors.Is(err, NotFound("Author")))
	assert.False(t, errors.Is(err, NotFound("Book")))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "not_found", e.Code)
}
