package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedsift/server/mocks"
)

func TestServer_Status(t *testing.T) {
	ts := newTestServer(t, testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "test", status["version"])
}

func TestServer_Ping(t *testing.T) {
	ts := newTestServer(t, testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{})

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestServer_AppInfoHeaders(t *testing.T) {
	ts := newTestServer(t, testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{})

	resp, err := http.Get(ts.URL + "/api/v1/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "feedsift", resp.Header.Get("App-Name"))
	assert.Equal(t, "test", resp.Header.Get("App-Version"))
}

func TestServer_NotFound(t *testing.T) {
	ts := newTestServer(t, testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{})

	resp, err := http.Get(ts.URL + "/api/v1/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RunShutdown(t *testing.T) {
	srv := New(testConfigMock(), &mocks.IngesterMock{}, passthroughRanker(), &mocks.DeduperMock{}, "test", false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(100 * time.Millisecond) // let the listener come up
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "graceful shutdown is not an error")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRenderJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	RenderJSON(rec, req, http.StatusTeapot, map[string]string{"k": "v"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"k":"v"}`, rec.Body.String())
}

func TestRenderError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	RenderError(rec, req, assert.AnError, http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), assert.AnError.Error())

	rec = httptest.NewRecorder()
	RenderError(rec, req, nil, http.StatusInternalServerError)
	assert.Contains(t, rec.Body.String(), "unknown error")
}
