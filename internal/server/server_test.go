package server

import (
	"bytes"
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/kanban/internal/app"
	"github.com/thenoetrevino/kanban/internal/auth"
	"github.com/thenoetrevino/kanban/internal/models"
	"github.com/thenoetrevino/kanban/internal/testutil"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

type response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

type testServer struct {
	t      *testing.T
	srv    *Server
	tokens *auth.Tokens
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	require.NoError(t, err)
	a := app.New(testutil.SetupTestStore(t), app.WithPasswordCost(bcrypt.MinCost))
	return &testServer{t: t, srv: New(a, tokens), tokens: tokens}
}

func (ts *testServer) token(userID string) string {
	ts.t.Helper()
	token, err := ts.tokens.Issue(userID)
	require.NoError(ts.t, err)
	return token
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) response[T] {
	t.Helper()
	var resp response[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func intPtr(i int) *int { return &i }

// ============================================================================
// TESTS
// ============================================================================

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		models.ErrValidation:      http.StatusBadRequest,
		models.ErrParentMismatch:  http.StatusBadRequest,
		models.ErrUnauthenticated: http.StatusUnauthorized,
		models.ErrForbidden:       http.StatusForbidden,
		models.ErrNotFound:        http.StatusNotFound,
		context.Canceled:          http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func TestAuthGate(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decode[any](t, rec)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Message)

	rec = ts.do(http.MethodGet, "/projects", "a.b.c", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodGet, "/projects", ts.token("alice"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Project](t, rec)
	assert.True(t, list.Success)
	assert.Empty(t, list.Data)
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reg := decode[authResponse](t, rec)
	assert.NotEmpty(t, reg.Data.Token)
	assert.Equal(t, "ada@example.com", reg.Data.Email)

	rec = ts.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ada@example.com", "password": "nope!!"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "ada@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[authResponse](t, rec)
	assert.Equal(t, reg.Data.ID, login.Data.ID)

	rec = ts.do(http.MethodGet, "/auth/me", login.Data.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "Ada", me.Data["name"])
	assert.NotContains(t, me.Data, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestSprintOneOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token("alice")

	rec := ts.do(http.MethodPost, "/projects", token, map[string]string{"name": "Sprint 1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	board := decode[models.Board](t, rec).Data
	require.Len(t, board.Columns, 3)
	names := []string{board.Columns[0].Name, board.Columns[1].Name, board.Columns[2].Name}
	assert.Equal(t, []string{"To do", "In progress", "Done"}, names)
	pid := board.Project.ID
	todo, done := board.Columns[0].ID, board.Columns[2].ID

	rec = ts.do(http.MethodPost, "/tasks", token, map[string]any{"title": "Write spec", "columnId": todo, "projectId": pid})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	write := decode[models.Task](t, rec).Data
	assert.Equal(t, 0, write.Order)

	rec = ts.do(http.MethodPost, "/tasks", token, map[string]any{"title": "Review", "columnId": todo, "projectId": pid})
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[models.Task](t, rec).Data
	assert.Equal(t, 1, review.Order)

	rec = ts.do(http.MethodPut, "/tasks/"+write.ID+"/move", token, map[string]any{"columnId": done, "order": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	moved := decode[models.Task](t, rec).Data
	assert.Equal(t, done, moved.ColumnID)
	assert.Equal(t, 0, moved.Order)

	rec = ts.do(http.MethodGet, "/tasks/column/"+todo, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inTodo := decode[[]models.Task](t, rec).Data
	require.Len(t, inTodo, 1)
	assert.Equal(t, review.ID, inTodo[0].ID)
	assert.Equal(t, 1, inTodo[0].Order)

	rec = ts.do(http.MethodDelete, "/columns/"+todo, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/projects/"+pid, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	after := decode[models.Board](t, rec).Data
	require.Len(t, after.Columns, 2)
	assert.Empty(t, after.Columns[0].Tasks)
	require.Len(t, after.Columns[1].Tasks, 1)
	assert.Equal(t, write.ID, after.Columns[1].Tasks[0].ID)

	rec = ts.do(http.MethodPut, "/tasks/"+review.ID, token, map[string]any{"title": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnershipIsolationOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	alice, bob := ts.token("alice"), ts.token("bob")

	rec := ts.do(http.MethodPost, "/projects", alice, map[string]string{"name": "private"})
	require.Equal(t, http.StatusCreated, rec.Code)
	board := decode[models.Board](t, rec).Data
	pid, col := board.Project.ID, board.Columns[0].ID

	rec = ts.do(http.MethodPost, "/tasks", alice, map[string]any{"title": "secret", "columnId": col, "projectId": pid})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := decode[models.Task](t, rec).Data

	forbidden := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/projects/" + pid, nil},
		{http.MethodPut, "/projects/" + pid, map[string]string{"name": "mine now"}},
		{http.MethodDelete, "/projects/" + pid, nil},
		{http.MethodGet, "/columns/project/" + pid, nil},
		{http.MethodPut, "/columns/" + col, map[string]string{"name": "x"}},
		{http.MethodDelete, "/columns/" + col, nil},
		{http.MethodPut, "/columns/reorder", map[string]any{"projectId": pid, "columns": []any{}}},
		{http.MethodGet, "/tasks/project/" + pid, nil},
		{http.MethodGet, "/tasks/column/" + col, nil},
		{http.MethodPut, "/tasks/" + task.ID, map[string]string{"title": "x"}},
		{http.MethodPut, "/tasks/" + task.ID + "/move", map[string]any{"columnId": col}},
		{http.MethodDelete, "/tasks/" + task.ID, nil},
	}
	for _, tc := range forbidden {
		rec := ts.do(tc.method, tc.path, bob, tc.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", tc.method, tc.path)
		assert.NotContains(t, rec.Body.String(), "secret", "%s %s", tc.method, tc.path)
	}

	rec = ts.do(http.MethodGet, "/projects/does-not-exist", bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/projects", bob, nil)
	assert.Empty(t, decode[[]models.Project](t, rec).Data)

	rec = ts.do(http.MethodGet, "/projects/"+pid, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private", decode[models.Board](t, rec).Data.Project.Name)
}

func TestReorderAndValidationOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token("alice")

	rec := ts.do(http.MethodPost, "/projects", token, map[string]string{"name": "p"})
	board := decode[models.Board](t, rec).Data
	pid := board.Project.ID
	c0, c1, c2 := board.Columns[0].ID, board.Columns[1].ID, board.Columns[2].ID

	rec = ts.do(http.MethodPut, "/columns/reorder", token, map[string]any{
		"projectId": pid,
		"columns":   []map[string]any{{"id": c2, "order": 0}, {"id": c0, "order": 1}, {"id": c1, "order": 2}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cols := decode[[]models.Column](t, rec).Data
	require.Len(t, cols, 3)
	assert.Equal(t, []string{c2, c0, c1}, []string{cols[0].ID, cols[1].ID, cols[2].ID})

	rec = ts.do(http.MethodPut, "/columns/reorder", token, map[string]any{
		"projectId": pid,
		"columns":   []map[string]any{{"id": c0, "order": -1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/columns", token, map[string]any{"projectId": pid})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/columns", token, map[string]any{"projectId": pid, "name": "QA"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 3, decode[models.Column](t, rec).Data.Order)

	rec = ts.do(http.MethodPost, "/tasks", token, map[string]any{"columnId": c0, "projectId": pid})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/tasks", token, map[string]any{"title": "t", "columnId": c0, "projectId": pid})
	task := decode[models.Task](t, rec).Data

	rec = ts.do(http.MethodPut, "/tasks/reorder", token, map[string]any{
		"columnId": c0,
		"tasks":    []map[string]any{{"id": task.ID, "order": 5}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[[]models.Task](t, rec).Data[0].Order)

	rec = ts.do(http.MethodPut, "/tasks/reorder", token, map[string]any{
		"columnId": c0,
		"tasks":    []map[string]any{{"id": task.ID, "order": int64(math.MaxInt64)}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	full := ts.do(http.MethodPost, "/columns", token, map[string]any{"projectId": pid, "name": "Full"})
	fullCol := decode[models.Column](t, full).Data.ID
	rec = ts.do(http.MethodPost, "/tasks", token, map[string]any{"title": "last", "columnId": fullCol, "projectId": pid})
	last := decode[models.Task](t, rec).Data
	rec = ts.do(http.MethodPut, "/tasks/reorder", token, map[string]any{
		"columnId": fullCol,
		"tasks":    []map[string]any{{"id": last.ID, "order": models.MaxOrder}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(http.MethodPost, "/tasks", token, map[string]any{"title": "one more", "columnId": fullCol, "projectId": pid})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	other := ts.do(http.MethodPost, "/projects", token, map[string]string{"name": "other"})
	foreignCol := decode[models.Board](t, other).Data.Columns[0].ID
	rec = ts.do(http.MethodPut, "/tasks/"+task.ID+"/move", token, map[string]any{"columnId": foreignCol, "order": intPtr(0)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedBodyAndUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token("alice")

	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode[any](t, rec).Success)

	rec = ts.do(http.MethodGet, "/nowhere", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCountsRequests(t *testing.T) {
	ts := newTestServer(t)

	ts.do(http.MethodGet, "/projects", "", nil)
	ts.do(http.MethodGet, "/projects", ts.token("alice"), nil)

	rec := ts.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[healthResponse](t, rec).Data
	assert.Equal(t, "ok", health.Status)
	assert.EqualValues(t, 3, health.Metrics.RequestsTotal)
	assert.EqualValues(t, 1, health.Metrics.ClientErrors)
	assert.EqualValues(t, 0, health.Metrics.ServerErrors)
	assert.EqualValues(t, 1, health.Metrics.InFlight, "the health request itself")
}

func TestStartAndShutdown(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- ts.srv.Start(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
