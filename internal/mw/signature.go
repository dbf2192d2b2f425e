package mw

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"arcrelay/internal/service"
)

const (
	SignatureHeader = "X-Signature"
	MaxWebhookBody  = 1 << 20
)

// SignatureMiddleware rejects requests whose body is not signed with secret.
// On success the body is rewound so the next handler can read it again.
func SignatureMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signature := r.Header.Get(SignatureHeader)
			if signature == "" {
				writeError(w, http.StatusBadRequest, "missing signature header")
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxWebhookBody))
			if err != nil {
				writeError(w, http.StatusBadRequest, "failed to read request body")
				return
			}

			if !service.VerifySignature(secret, body, signature) {
				slog.WarnContext(r.Context(), "webhook signature mismatch", "remote", r.RemoteAddr)
				writeError(w, http.StatusForbidden, "invalid signature")
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// writeError matches the {"error": ...} body the handlers return.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg})
}
