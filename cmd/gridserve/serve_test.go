package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samthor/treegrid/gridserve"
	"github.com/samthor/treegrid/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddr(t *testing.T) {
	t.Setenv("PORT", "")
	assert.Equal(t, "localhost:8080", (&serveOpts{}).addr())
	assert.Equal(t, ":8080", (&serveOpts{ServeAll: true}).addr())
	assert.Equal(t, "127.0.0.1:1", (&serveOpts{Addr: "127.0.0.1:1"}).addr())

	t.Setenv("PORT", "9001")
	assert.Equal(t, "localhost:9001", (&serveOpts{}).addr())

	t.Setenv("PORT", "bogus")
	assert.Equal(t, "localhost:8080", (&serveOpts{}).addr())
}

func TestServeShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, &serveOpts{Addr: addr, Handler: mux}) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
}

func TestServeListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	err = serve(t.Context(), &serveOpts{Addr: l.Addr().String(), Handler: http.NotFoundHandler()})
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	s, err := gridserve.New(nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	jsonHandler(logger.Discard(), serverStatus(s)).ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"attached":0,"detached":0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	failing := func(*http.Request) (any, error) { return nil, errors.New("nope") }
	jsonHandler(logger.Discard(), failing).ServeHTTP(rec, httptest.NewRequest("GET", "/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
