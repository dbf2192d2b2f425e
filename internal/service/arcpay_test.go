package service

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

	"arcrelay/internal/model"
)

func newProvider(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestArcPayClient_CreateOrder(t *testing.T) {
	var got model.CreateOrderRequest
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "key-123", r.Header.Get("ArcKey"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"uuid":"abc","status":"created","amount":0.8}`)
	})

	c := NewArcPayClient(srv.URL, "key-123", time.Second)
	req := NewCreateOrderRequest(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), nil)

	order, err := c.CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.Order{UUID: "abc", Status: "created"}, order)
	assert.Equal(t, "INV-20240506070809", got.OrderID)
	assert.Len(t, got.Items, 2)
}

func TestArcPayClient_IDFallback(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"xyz","status":"pending"}`)
	})

	order, err := NewArcPayClient(srv.URL, "k", time.Second).
		CreateOrder(context.Background(), NewCreateOrderRequest(time.Now(), nil))
	require.NoError(t, err)
	assert.Equal(t, model.Order{UUID: "xyz", Status: "pending"}, order)
}

func TestArcPayClient_Errors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`, ErrProviderStatus},
		{"unauthorized", http.StatusUnauthorized, `{"message":"bad key"}`, ErrProviderStatus},
		{"not json", http.StatusOK, `<html>`, ErrProviderResponse},
		{"missing uuid", http.StatusOK, `{"status":"created"}`, ErrProviderResponse},
		{"missing status", http.StatusOK, `{"uuid":"abc"}`, ErrProviderResponse},
		{"wrong type", http.StatusOK, `{"uuid":42,"status":"created"}`, ErrProviderResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := NewArcPayClient(srv.URL, "k", time.Second).
				CreateOrder(context.Background(), NewCreateOrderRequest(time.Now(), nil))
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestArcPayClient_Timeout(t *testing.T) {
	srv := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	start := time.Now()
	_, err := NewArcPayClient(srv.URL, "k", 50*time.Millisecond).
		CreateOrder(context.Background(), NewCreateOrderRequest(time.Now(), nil))
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestArcPayClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewArcPayClient(url, "k", time.Second).
		CreateOrder(context.Background(), NewCreateOrderRequest(time.Now(), nil))
	require.Error(t, err)
}
