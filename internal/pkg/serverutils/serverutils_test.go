package serverutils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"notekeeper-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body io.Reader) Response[any] {
	t.Helper()
	var res Response[any]
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestErrorHandler_MapsAppErrors(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/missing", func(*fiber.Ctx) error { return apperror.NotFound("notebook not found") })
	app.Get("/query", func(*fiber.Ctx) error { return apperror.Query(assert.AnError) })

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	res := decode(t, resp.Body)
	assert.False(t, res.Success)
	assert.Equal(t, "NOT_FOUND", res.Error)

	resp, err = app.Test(httptest.NewRequest("GET", "/query", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Name  string `validate:"required"`
		Order string `validate:"omitempty,oneof=newest oldest"`
	}

	assert.NoError(t, ValidateRequest(req{Name: "a"}))

	err := ValidateRequest(req{Order: "sideways"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "order must satisfy oneof=newest oldest")
}

func TestJwtMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/open", JwtMiddleware(""), func(c *fiber.Ctx) error { return c.SendStatus(204) })
	app.Get("/closed", JwtMiddleware("secret"), func(c *fiber.Ctx) error { return c.SendStatus(204) })

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "device-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/closed", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
}
