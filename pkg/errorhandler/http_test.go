package errorhandler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/event-horizon/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: NewHTTPErrorHandler()})
	app.Get("/public", func(*fiber.Ctx) error {
		return errs.NewPublicError("bad input")
	})
	app.Get("/not-found", func(*fiber.Ctx) error {
		return errs.WithPublicMessage(errors.Wrap(errs.NotFound, "event 0x1"), "event not found")
	})
	app.Get("/fiber", func(*fiber.Ctx) error {
		return fiber.ErrMethodNotAllowed
	})
	app.Get("/internal", func(*fiber.Ctx) error {
		return errors.New("db is down")
	})

	testCases := []struct {
		path    string
		status  int
		message string
	}{
		{"/public", http.StatusBadRequest, "bad input"},
		{"/not-found", http.StatusNotFound, "event not found: event 0x1: Not Found"},
		{"/fiber", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{"/internal", http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, tc.message, payload["error"])
		})
	}
}
