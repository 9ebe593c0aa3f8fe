package transport_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ikon/internal/adapters/transport"
	"go.trai.ch/ikon/internal/core/domain"
)

// MockRoundTripper is a helper to mock http.Client behavior.
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func newMockClient(handler func(req *http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{
		Transport: &MockRoundTripper{RoundTripFunc: handler},
	}
}

func TestClient_Get(t *testing.T) {
	const target = "https://api.example.com/mdi.json?icons=home"

	t.Run("Success", func(t *testing.T) {
		client := newMockClient(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, target, req.URL.String())
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"prefix":"mdi","icons":{}}`)),
				Header:     make(http.Header),
			}, nil
		})

		resp, err := transport.NewWithClient(client).Get(t.Context(), target)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.JSONEq(t, `{"prefix":"mdi","icons":{}}`, string(resp.Body))
	})

	t.Run("StatusIsNotAnError", func(t *testing.T) {
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(bytes.NewBufferString("404")),
			}, nil
		})

		resp, err := transport.NewWithClient(client).Get(t.Context(), target)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, "404", string(resp.Body))
	})

	t.Run("ConnectionError", func(t *testing.T) {
		client := newMockClient(func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		resp, err := transport.NewWithClient(client).Get(t.Context(), target)
		require.ErrorContains(t, err, domain.ErrRequestFailed.Error())
		assert.Nil(t, resp)
	})
}

func TestClient_GetHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := transport.New().Get(ctx, srv.URL)
	require.ErrorContains(t, err, domain.ErrRequestFailed.Error())
}

func TestClient_GetRealServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mdi.json", r.URL.Path)
		assert.Equal(t, "home,account", r.URL.Query().Get("icons"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prefix":"mdi"}`))
	}))
	t.Cleanup(srv.Close)

	resp, err := transport.New().Get(t.Context(), srv.URL+"/mdi.json?icons=home,account")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"prefix":"mdi"}`, string(resp.Body))
}
