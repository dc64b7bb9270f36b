package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunw/bboard/internal/api"
	"github.com/hyunw/bboard/internal/api/response"
	"github.com/hyunw/bboard/internal/factory"
	"github.com/hyunw/bboard/internal/model"
	"github.com/hyunw/bboard/internal/services/auth"
	"github.com/hyunw/bboard/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T, authCfg auth.Config) *testServer {
	t.Helper()

	app := factory.NewTestAppWithAuthConfig(authCfg)

	router := api.NewRouter(api.RouterConfig{
		Logger:       testutil.NopLogger(),
		AuthService:  app.AuthService,
		BoardService: app.BoardService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) registerAndLogin(t *testing.T, username, password, displayName string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/auth/register", map[string]string{
		"username":     username,
		"password":     password,
		"display_name": displayName,
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, auth.Config{})

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterThenDuplicateUsername(t *testing.T) {
	ts := newTestServer(t, auth.Config{})

	body := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}

	rr := ts.request(http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Account
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "Alice", resp.DisplayName)
	assert.NotEmpty(t, resp.ID)

	// Same username again
	rr = ts.request(http.MethodPost, "/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "USERNAME_TAKEN", errorCode(t, rr))
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t, auth.Config{})

	rr := ts.request(http.MethodPost, "/auth/register", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))
}

func TestLoginWrongThenRightPassword(t *testing.T) {
	ts := newTestServer(t, auth.Config{})

	rr := ts.request(http.MethodPost, "/auth/register", map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/auth/login", map[string]string{
		"username": "alice",
		"password": "secret123",
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alice", resp.DisplayName)
}

func TestLoginUnknownUserSameErrorAsWrongPassword(t *testing.T) {
	ts := newTestServer(t, auth.Config{})

	rr := ts.request(http.MethodPost, "/auth/login", map[string]string{
		"username": "ghost",
		"password": "whatever",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rr))
}

func TestProtectedEndpointTokenMatrix(t *testing.T) {
	ts := newTestServer(t, auth.Config{})
	body := map[string]string{"title": "Hello", "content": "World"}

	t.Run("no authorization header", func(t *testing.T) {
		rr := ts.request(http.MethodPost, "/posts", body, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "TOKEN_MISSING", errorCode(t, rr))
	})

	t.Run("header without token segment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBufferString("{}"))
		req.Header.Set("Authorization", "Bearer ")
		rr := httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "TOKEN_MISSING", errorCode(t, rr))
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		foreign := auth.NewTokenIssuer([]byte("some-other-secret"), time.Hour, ts.app.MockClock)
		token, err := foreign.Issue(&model.Account{ID: "x", Username: "x", DisplayName: "X"})
		require.NoError(t, err)

		rr := ts.request(http.MethodPost, "/posts", body, token)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "TOKEN_INVALID_SIGNATURE", errorCode(t, rr))
	})

	t.Run("garbage token", func(t *testing.T) {
		rr := ts.request(http.MethodPost, "/posts", body, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "TOKEN_MALFORMED", errorCode(t, rr))
	})

	t.Run("expired token", func(t *testing.T) {
		// A legitimately issued token, with the clock wound past its TTL
		token := ts.registerAndLogin(t, "carol", "secret123", "Carol")
		ts.app.MockClock.Advance(auth.DefaultConfig().TokenTTL + time.Minute)

		rr := ts.request(http.MethodPost, "/posts", body, token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, rr))
	})
}

func TestIPLimitedRegistration(t *testing.T) {
	ts := newTestServer(t, auth.Config{TokenTTL: time.Hour, LimitByIP: true})

	register := func(username, ip string) *httptest.ResponseRecorder {
		b, _ := json.Marshal(map[string]string{
			"username":     username,
			"password":     "secret123",
			"display_name": username,
		})
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(b))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", ip)
		rr := httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		return rr
	}

	rr := register("alice", "10.0.0.1")
	assert.Equal(t, http.StatusCreated, rr.Code)

	// Different username, same address
	rr = register("bob", "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "IP_LIMIT_REACHED", errorCode(t, rr))

	// Different address is fine
	rr = register("carol", "10.0.0.2")
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestPostAndCommentFlow(t *testing.T) {
	ts := newTestServer(t, auth.Config{})
	token := ts.registerAndLogin(t, "alice", "secret123", "Alice")

	// Create a post
	rr := ts.request(http.MethodPost, "/posts", map[string]string{
		"title":   "Hello",
		"content": "First post",
	}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var post response.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
	assert.Equal(t, "Alice", post.AuthorName)

	// Anyone can list posts
	rr = ts.request(http.MethodGet, "/posts", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var posts []response.Post
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)

	// Comment as a second user
	bobToken := ts.registerAndLogin(t, "bob", "hunter22", "Bob")
	rr = ts.request(http.MethodPost, fmt.Sprintf("/posts/%s/comments", post.ID), map[string]string{
		"text": "Nice post",
	}, bobToken)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	// Post detail includes the comment
	rr = ts.request(http.MethodGet, "/posts/"+post.ID, nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var detail response.PostDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "Bob", detail.Comments[0].AuthorName)
	assert.Equal(t, "Nice post", detail.Comments[0].Text)
}

func TestCommentOnMissingPost(t *testing.T) {
	ts := newTestServer(t, auth.Config{})
	token := ts.registerAndLogin(t, "alice", "secret123", "Alice")

	rr := ts.request(http.MethodPost, "/posts/nonexistent/comments", map[string]string{
		"text": "hello?",
	}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "POST_NOT_FOUND", errorCode(t, rr))
}

func TestGetMissingPost(t *testing.T) {
	ts := newTestServer(t, auth.Config{})

	rr := ts.request(http.MethodGet, "/posts/nonexistent", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatePostValidation(t *testing.T) {
	ts := newTestServer(t, auth.Config{})
	token := ts.registerAndLogin(t, "alice", "secret123", "Alice")

	rr := ts.request(http.MethodPost, "/posts", map[string]string{"title": "Hello"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))
}
