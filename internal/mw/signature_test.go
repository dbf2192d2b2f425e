package mw

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"arcrelay/internal/service"
)

var secret = []byte("webhook-secret")

func echoBody(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		body, _ := io.ReadAll(r.Body)
		_, _ = w.Write(body)
	})
}

func TestSignatureMiddleware(t *testing.T) {
	body := `{"event":"order.status.changed"}`

	cases := []struct {
		name       string
		signature  string
		wantStatus int
		wantNext   bool
		wantError  string
	}{
		{"valid", service.Sign(secret, []byte(body)), http.StatusOK, true, ""},
		{"missing header", "", http.StatusBadRequest, false, "missing signature header"},
		{"wrong signature", service.Sign([]byte("nope"), []byte(body)), http.StatusForbidden, false, "invalid signature"},
		{"uppercase hex", strings.ToUpper(service.Sign(secret, []byte(body))), http.StatusForbidden, false, "invalid signature"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
			if tc.signature != "" {
				req.Header.Set(SignatureHeader, tc.signature)
			}
			rec := httptest.NewRecorder()

			SignatureMiddleware(secret)(echoBody(&called)).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantNext, called)
			if tc.wantNext {
				assert.Equal(t, body, rec.Body.String(), "body must be rewound for the next handler")
				return
			}
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"error":"`+tc.wantError+`"}`, rec.Body.String())
		})
	}
}

func TestSignatureMiddleware_BodyTooLarge(t *testing.T) {
	body := strings.Repeat("a", MaxWebhookBody+1)
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set(SignatureHeader, service.Sign(secret, []byte(body)))
	rec := httptest.NewRecorder()

	var called bool
	SignatureMiddleware(secret)(echoBody(&called)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"failed to read request body"}`, rec.Body.String())
	assert.False(t, called)
}
