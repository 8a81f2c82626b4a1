package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blogist/blogapi/internal/blogservice"
	"github.com/blogist/blogapi/internal/common"
	"github.com/blogist/blogapi/internal/statservice"
	"github.com/blogist/blogapi/internal/userservice"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig() *Config {
	return &Config{
		Environment:    "test",
		Version:        "1.0.0",
		TrustedOrigins: []string{"http://example.com"},
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		StatsCacheTTL:  time.Minute,
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := newTestConfig()

	cache := common.NewCache(time.Minute, time.Minute)
	publisher := common.NewEventPublisher(common.NopBroker{}, logger)
	blogService := blogservice.NewBlogService(db, publisher)

	app := &application{
		config:      cfg,
		logger:      logger,
		userService: userservice.NewUserService(db, userservice.NewTokenMaker(cfg.JWTSecret, cfg.JWTTTL), cache, publisher),
		blogService: blogService,
		statService: statservice.NewStatService(blogService, common.NopBroker{}, cache, cfg.StatsCacheTTL, logger),
		publisher:   publisher,
		metrics:     common.NewHTTPMetrics(),
	}

	t.Cleanup(func() {
		app.statService.Close()
		publisher.Wait()
	})

	return app, db
}

// registerAndLogin creates a user through the service and returns its id and token.
func registerAndLogin(t *testing.T, app *application, username string) (int, string) {
	ctx := context.Background()

	user, err := app.userService.CreateUser(ctx, username, "Test User", "sekret")
	require.NoError(t, err)

	res, err := app.userService.LoginUser(ctx, username, "sekret")
	require.NoError(t, err)

	return user.ID, res.Token
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, []byte) {
	var body io.Reader
	if payload != nil {
		js, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(js)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, responseBody
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	err := json.Unmarshal(body, &v)
	if err != nil {
		t.Fatalf("could not decode %q: %v", body, err)
	}

	return v
}

func countBlogs(t *testing.T, db *sql.DB) int {
	var n int
	err := db.QueryRow("SELECT count(*) FROM blogs").Scan(&n)
	require.NoError(t, err)
	return n
}
