package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"holocron/internal/config"
	"holocron/internal/notifications"
	"holocron/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *fiber.App
	server  *Server
	catalog testutil.Catalog
	redis   *redis.Client
}

func setupTestServer(t *testing.T) testEnv {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	catalog := testutil.SeedCatalog(t, db)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{Port: "3000", Env: "test", AllowedOrigins: "*"}
	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	return testEnv{app: s.NewApp(), server: s, catalog: catalog, redis: rdb}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func TestGetAllUsers_NeverExposesPassword(t *testing.T) {
	env := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(raw), "password")

	var body UsersResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Here's a list of all the users", body.Msg)
	require.Len(t, body.Users, 2)
	assert.Equal(t, "luke@rebellion.org", body.Users[0].Email)
}

func TestGetUserFavorites(t *testing.T) {
	env := setupTestServer(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/users/1/favorites", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Here's the list of favorites for Luke", body["msg"])
	favorites := body["favorites"].(map[string]interface{})
	assert.Equal(t, []interface{}{}, favorites["favorite_characters"])
	assert.Equal(t, []interface{}{}, favorites["favorite_planets"])

	status, body = doRequest(t, env.app, http.MethodGet, "/users/999/favorites", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No user with that id was found", body["msg"])
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCatalogEndpoints(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantMsg    string
		wantKey    string
	}{
		{"list characters", "/characters", http.StatusOK, "Here's a list of all the characters", "characters"},
		{"get character", "/characters/2", http.StatusOK, "Here's your character", "character"},
		{"unknown character", "/characters/99", http.StatusNotFound, "No character with that id was found", ""},
		{"non-numeric character", "/characters/yoda", http.StatusNotFound, "No character with that id was found", ""},
		{"list planets", "/planets", http.StatusOK, "Here's a list of all the planets", "planets"},
		{"list planets trailing slash", "/planets/", http.StatusOK, "Here's a list of all the planets", "planets"},
		{"get planet", "/planets/1", http.StatusOK, "Here's your planet", "planet"},
		{"unknown planet", "/planets/42", http.StatusNotFound, "No planet with that id was found", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, env.app, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, body["msg"])
			if tt.wantKey != "" {
				assert.Contains(t, body, tt.wantKey)
			}
		})
	}

	_, body := doRequest(t, env.app, http.MethodGet, "/characters/2", "")
	character := body["character"].(map[string]interface{})
	assert.Equal(t, "Chewbacca", character["name"])
}

func TestFavoritePlanet_AddTwiceConflicts(t *testing.T) {
	env := setupTestServer(t)

	status, body := doRequest(t, env.app, http.MethodPost, "/favorite/planets/2", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Congrats you succesfully added your favorite planet", body["msg"])

	status, body = doRequest(t, env.app, http.MethodPost, "/favorite/planets/2", `{"user_id":1}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "This planet is already one of your favorites", body["msg"])
	assert.Equal(t, "CONFLICT", body["code"])

	_, body = doRequest(t, env.app, http.MethodGet, "/users/1/favorites", "")
	favorites := body["favorites"].(map[string]interface{})
	planets := favorites["favorite_planets"].([]interface{})
	require.Len(t, planets, 1)
	assert.Equal(t, "Hoth", planets[0].(map[string]interface{})["name"])
}

func TestFavoriteCharacter_AddRemoveRemove(t *testing.T) {
	env := setupTestServer(t)

	status, _ := doRequest(t, env.app, http.MethodPost, "/favorite/characters/1", `{"user_id":2}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, env.app, http.MethodDelete, "/favorite/characters/1", `{"user_id":2}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Congrats you succesfully deleted your favorite character", body["msg"])

	status, body = doRequest(t, env.app, http.MethodDelete, "/favorite/characters/1", `{"user_id":2}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "This character is not one of your favorites", body["msg"])
}

func TestFavoriteEndpoints_Errors(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"empty object", http.MethodDelete, "/favorite/characters/9", `{}`, http.StatusBadRequest, "Please provide an available user_id"},
		{"no body", http.MethodPost, "/favorite/planets/1", "", http.StatusBadRequest, "Please provide an available user_id"},
		{"malformed body", http.MethodPost, "/favorite/planets/1", `{"user_id":`, http.StatusBadRequest, "Please provide an available user_id"},
		{"null user", http.MethodPost, "/favorite/characters/1", `{"user_id":null}`, http.StatusBadRequest, "Please provide an available user_id"},
		{"unknown user", http.MethodPost, "/favorite/characters/1", `{"user_id":77}`, http.StatusNotFound, "No user with that id was found"},
		{"negative user", http.MethodPost, "/favorite/characters/1", `{"user_id":-1}`, http.StatusNotFound, "No user with that id was found"},
		{"non-numeric user", http.MethodDelete, "/favorite/planets/1", `{"user_id":"luke"}`, http.StatusNotFound, "No user with that id was found"},
		{"unknown character", http.MethodPost, "/favorite/characters/77", `{"user_id":1}`, http.StatusNotFound, "No character with that id was found"},
		{"unknown planet", http.MethodDelete, "/favorite/planets/77", `{"user_id":1}`, http.StatusNotFound, "No planet with that id was found"},
		{"non-numeric id", http.MethodPost, "/favorite/planets/hoth", `{"user_id":1}`, http.StatusNotFound, "No planet with that id was found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, env.app, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, body["msg"])
		})
	}
}

func TestFavoriteAdd_AcceptsNumericStringUserID(t *testing.T) {
	env := setupTestServer(t)

	status, body := doRequest(t, env.app, http.MethodPost, "/favorite/planets/1", `{"user_id":"1"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Congrats you succesfully added your favorite planet", body["msg"])

	status, _ = doRequest(t, env.app, http.MethodPost, "/favorite/planets/1", `{"user_id":1}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestFavoriteAdd_PublishesUserEvent(t *testing.T) {
	env := setupTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := env.redis.Subscribe(ctx, notifications.UserChannel(1))
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	status, _ := doRequest(t, env.app, http.MethodPost, "/favorite/characters/3", `{"user_id":1}`)
	require.Equal(t, http.StatusOK, status)

	select {
	case msg := <-sub.Channel():
		var ev notifications.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, notifications.EventFavoriteCharacterAdded, ev.Type)
		assert.Equal(t, uint(1), ev.UserID)
		assert.Equal(t, "R2-D2", ev.Payload["name"])
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
}

func TestFavoriteAdd_WithoutRedis(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	testutil.SeedCatalog(t, db)

	s, err := NewServerWithDeps(&config.Config{Port: "3000"}, db, nil)
	require.NoError(t, err)
	app := s.NewApp()

	status, _ := doRequest(t, app, http.MethodPost, "/favorite/planets/1", `{"user_id":1}`)
	assert.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, app, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, status)
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "disabled", checks["redis"])
}

func TestHealthEndpoints(t *testing.T) {
	env := setupTestServer(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["status"])

	status, body = doRequest(t, env.app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "healthy", checks["database"])
	assert.Equal(t, "healthy", checks["redis"])
}

func TestReadiness_RedisDown(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	s, err := NewServerWithDeps(&config.Config{Port: "3000"}, db, rdb)
	require.NoError(t, err)

	status, body := doRequest(t, s.NewApp(), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
}

func TestSitemap(t *testing.T) {
	env := setupTestServer(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, status)

	endpoints := body["endpoints"].([]interface{})
	assert.Contains(t, endpoints, "/users")
	assert.Contains(t, endpoints, "/characters")
	assert.Contains(t, endpoints, "/planets")
	assert.NotContains(t, endpoints, "/characters/:id")
}

func TestUnknownRoute(t *testing.T) {
	env := setupTestServer(t)

	status, body := doRequest(t, env.app, http.MethodGet, "/starships", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	env := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/planets", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTestServer(t)

	doRequest(t, env.app, http.MethodPost, "/favorite/planets/1", `{"user_id":1}`)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "holocron_favorite_toggles_total")
}
