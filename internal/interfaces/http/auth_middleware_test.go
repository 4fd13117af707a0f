package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Hospital-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Hospital-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "hospital-pro-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareSinHeader(t *testing.T) {
	app := buildTestApp("laboratorista")
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareFormatoInvalido(t *testing.T) {
	app := buildTestApp("laboratorista")
	resp := doRequest(t, app, "Token abc")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareTokenInvalido(t *testing.T) {
	app := buildTestApp("laboratorista")
	resp := doRequest(t, app, "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRolePermitido(t *testing.T) {
	app := buildTestApp("laboratorista")
	resp := doRequest(t, app, tokenForRole(t, "laboratorista"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "laboratorista", out["role"])
}

func TestRequireRoleDenegado(t *testing.T) {
	app := buildTestApp("farmaceutico")
	resp := doRequest(t, app, tokenForRole(t, "laboratorista"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAdminSiemprePasa(t *testing.T) {
	app := buildTestApp("farmaceutico")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
