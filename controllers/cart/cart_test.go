package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/config"
	"github.com/phungle2508/antoree-backend/middleware"
	"github.com/phungle2508/antoree-backend/routers/cartRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp() *fiber.App {
	config.AppConfig = config.Defaults()
	catalog.LoadCatalog()
	bus.InitBus()

	app := fiber.New()
	app.Use(middleware.SessionMiddleware)
	cartRoutes.SetupCartRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string, cookies []*http.Cookie) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "non-envelope response: %s", raw)
	return resp, env
}

func cookieNamed(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAddCartItemSetsCookieAndRoundTrips(t *testing.T) {
	app := newTestApp()

	resp, env := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"c1","quantity":2}`, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)
	assert.Equal(t, "Item added to cart", env.Message)

	cartCookie := cookieNamed(resp, "cart")
	require.NotNil(t, cartCookie, "mutation must persist through a Set-Cookie")
	assert.Equal(t, "/", cartCookie.Path)
	assert.False(t, cartCookie.Expires.IsZero())

	// The value is URL-encoded JSON, readable by any cookie-aware client
	decoded, err := url.QueryUnescape(cartCookie.Value)
	require.NoError(t, err)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(decoded), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0]["id"])
	assert.Equal(t, float64(2), items[0]["quantity"])

	// A follow-up request carrying the cookie sees the same cart
	resp, env = doJSON(t, app, fiber.MethodGet, "/cart/", "", []*http.Cookie{cartCookie})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Items []struct {
			ID       string  `json:"id"`
			Quantity int     `json:"quantity"`
			Subtotal float64 `json:"subtotal"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "c1", data.Items[0].ID)
	assert.Equal(t, 2, data.Items[0].Quantity)
	assert.Equal(t, data.Items[0].Subtotal, data.Total)
}

func TestAddCartItemRejectsUnknownCourse(t *testing.T) {
	app := newTestApp()

	resp, env := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"no-such-course"}`, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Status)
	assert.Equal(t, "Course not found!", env.Message)
}

func TestAddCartItemValidation(t *testing.T) {
	app := newTestApp()

	resp, env := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"quantity":2}`, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "Validation failed!", env.Message)

	resp, _ = doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"c1","quantity":-3}`, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAddCartItemTwiceIncrementsQuantity(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"c1","quantity":1}`, nil)
	cartCookie := cookieNamed(resp, "cart")
	require.NotNil(t, cartCookie)

	resp, env := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"c1","quantity":3}`, []*http.Cookie{cartCookie})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item quantity updated in cart", env.Message)

	var items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestUpdateCartItemZeroQuantityRemoves(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"c1","quantity":2}`, nil)
	cartCookie := cookieNamed(resp, "cart")
	require.NotNil(t, cartCookie)

	resp, env := doJSON(t, app, fiber.MethodPut, "/cart/items/c1", `{"quantity":0}`, []*http.Cookie{cartCookie})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item removed from cart", env.Message)

	var items []interface{}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Empty(t, items)
}

func TestUpdateCartItemMissingReports404(t *testing.T) {
	app := newTestApp()

	resp, env := doJSON(t, app, fiber.MethodPut, "/cart/items/c1?quantity=2", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found in cart", env.Message)
}

func TestClearCartExpiresCookie(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, fiber.MethodPost, "/cart/items", `{"course_id":"c2"}`, nil)
	cartCookie := cookieNamed(resp, "cart")
	require.NotNil(t, cartCookie)

	resp, env := doJSON(t, app, fiber.MethodDelete, "/cart/", "", []*http.Cookie{cartCookie})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)

	cleared := cookieNamed(resp, "cart")
	require.NotNil(t, cleared, "clearing must expire the cookie")
	assert.True(t, cleared.Expires.Before(time.Now()), "cleared cookie must carry a past expiry")
}

func TestSessionHeaderEchoedAndGenerated(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/cart/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderSessionID), "server must mint a session ID when none is sent")

	req = httptest.NewRequest(fiber.MethodGet, "/cart/", nil)
	req.Header.Set(middleware.HeaderSessionID, "my-session")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "my-session", resp.Header.Get(middleware.HeaderSessionID))
}
