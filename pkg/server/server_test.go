package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mzerrors "github.com/matzehuels/mazegen/pkg/errors"
	mazeio "github.com/matzehuels/mazegen/pkg/io"
	"github.com/matzehuels/mazegen/pkg/maze"
	"github.com/matzehuels/mazegen/pkg/observability"
	"github.com/matzehuels/mazegen/pkg/pipeline"
	"github.com/matzehuels/mazegen/pkg/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	archive := store.NewMemoryStore()
	s := New(pipeline.NewRunner(nil, nil, nil), archive, Config{MaxDimension: 50})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, archive
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestGenerateText(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, body := get(t, ts.URL+"/v1/maze?width=6&height=4&algorithm=kruskal&seed=8")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "8", resp.Header.Get("X-Maze-Seed"))
	assert.Equal(t, "kruskal", resp.Header.Get("X-Maze-Algorithm"))
	assert.Equal(t, 2*4+1, strings.Count(string(body), "\n"))

	_, again := get(t, ts.URL+"/v1/maze?width=6&height=4&algorithm=kruskal&seed=8")
	assert.Equal(t, body, again, "same seed must render the same maze")
}

func TestGenerateFormats(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/v1/maze?width=3&height=3&seed=1&format=json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	snap, err := mazeio.ReadJSON(bytes.NewReader(body))
	require.NoError(t, err)
	m, err := snap.Maze()
	require.NoError(t, err)
	assert.NoError(t, maze.Verify(m))

	resp, body = get(t, ts.URL+"/v1/maze?width=3&height=3&seed=1&format=dot")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "graph maze {"))

	resp, body = get(t, ts.URL+"/v1/maze?width=2&height=2&seed=1&style=ascii")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "+---+---+"))
}

func TestGenerateErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		query  string
		status int
		code   mzerrors.Code
	}{
		{"width=0", http.StatusBadRequest, mzerrors.ErrCodeInvalidDimensions},
		{"width=abc", http.StatusBadRequest, mzerrors.ErrCodeInvalidDimensions},
		{"width=51", http.StatusBadRequest, mzerrors.ErrCodeInvalidDimensions},
		{"algorithm=wilson", http.StatusBadRequest, mzerrors.ErrCodeInvalidAlgorithm},
		{"format=png", http.StatusBadRequest, mzerrors.ErrCodeInvalidFormat},
		{"style=emoji", http.StatusBadRequest, mzerrors.ErrCodeInvalidStyle},
		{"seed=-4", http.StatusBadRequest, mzerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, body := get(t, ts.URL+"/v1/maze?"+tt.query)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			e := decodeError(t, body)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestCreateAndFetch(t *testing.T) {
	ts, archive := newTestServer(t)

	resp, err := http.Post(ts.URL+"/v1/mazes", "application/json",
		strings.NewReader(`{"width": 5, "height": 4, "algorithm": "prim", "seed": 21}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created, err := mazeio.ReadJSON(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "/v1/mazes/"+created.ID.String(), resp.Header.Get("Location"))
	assert.Equal(t, maze.Prim, created.Algorithm)
	assert.Equal(t, uint64(21), created.Seed)

	stored, err := archive.ByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Walls, stored.Walls)

	r, body := get(t, ts.URL+"/v1/mazes/"+created.ID.String())
	require.Equal(t, http.StatusOK, r.StatusCode)
	fetched, err := mazeio.ReadJSON(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, created.Walls, fetched.Walls)

	r, body = get(t, ts.URL+"/v1/mazes/"+created.ID.String()+"?format=text&style=ascii")
	require.Equal(t, http.StatusOK, r.StatusCode)
	assert.Equal(t, 2*4+1, strings.Count(string(body), "\n"))
	assert.True(t, strings.HasPrefix(string(body), "+---+"))

	r, body = get(t, ts.URL+"/v1/mazes")
	require.Equal(t, http.StatusOK, r.StatusCode)
	var list struct {
		Mazes []json.RawMessage `json:"mazes"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list.Mazes, 1)
}

func TestCreateSameMazeTwiceKeepsOneRecord(t *testing.T) {
	ts, archive := newTestServer(t)

	post := func() string {
		resp, err := http.Post(ts.URL+"/v1/mazes", "application/json",
			strings.NewReader(`{"width": 4, "height": 4, "algorithm": "kruskal", "seed": 9}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		return resp.Header.Get("Location")
	}

	assert.Equal(t, post(), post())
	all, err := archive.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		code mzerrors.Code
	}{
		{"malformed", `{"width":`, mzerrors.ErrCodeInvalidInput},
		{"unknown field", `{"depth": 3}`, mzerrors.ErrCodeInvalidInput},
		{"too large", `{"width": 500, "height": 5}`, mzerrors.ErrCodeInvalidDimensions},
		{"bad algorithm", `{"algorithm": "eller"}`, mzerrors.ErrCodeInvalidAlgorithm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/mazes", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, body).Code)
		})
	}
}

func TestGetArchivedErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/v1/mazes/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, mzerrors.ErrCodeInvalidInput, decodeError(t, body).Code)

	resp, body = get(t, ts.URL+"/v1/mazes/6f1c0a4e-8a43-4d55-9a0b-51d2d8a5b1a7")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, mzerrors.ErrCodeMazeNotFound, decodeError(t, body).Code)

	resp, _ = get(t, ts.URL+"/v1/mazes?limit=zero")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoutingErrors(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := get(t, ts.URL+"/v2/nothing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, mzerrors.ErrCodeNotFound, decodeError(t, body).Code)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/maze", nil)
	require.NoError(t, err)
	r, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, r.StatusCode)
}

type routeRecorder struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
}

func (h *routeRecorder) OnResponse(_ context.Context, _ string, route string, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
}

func TestHTTPHooksSeeRoutePattern(t *testing.T) {
	h := &routeRecorder{}
	observability.SetHTTPHooks(h)
	defer observability.Reset()

	ts, _ := newTestServer(t)
	get(t, ts.URL+"/v1/mazes/6f1c0a4e-8a43-4d55-9a0b-51d2d8a5b1a7")

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.routes, 1)
	assert.Equal(t, "/v1/mazes/{id}", h.routes[0])
}

func TestListenAndServeShutsDown(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, nil), nil, Config{Addr: "127.0.0.1:0"})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
