package handler

import (
	"io"
	"log/slog"
	"net/http"

	"arcrelay/internal/model"
	"arcrelay/internal/service"
)

type webhookAck struct {
	Status string `json:"status"`
}

// WebhookHandler applies ArcPay status events to the order table. It expects
// the body to have been authenticated by mw.SignatureMiddleware.
func WebhookHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}

		event, err := model.ParseWebhookEvent(body)
		if err != nil {
			slog.WarnContext(r.Context(), "malformed webhook body", "error", err)
			writeError(w, http.StatusBadRequest, "invalid JSON format")
			return
		}

		if event.Event != model.EventOrderStatusChanged {
			slog.InfoContext(r.Context(), "webhook received", "event", event.Event)
			writeJSON(w, http.StatusOK, webhookAck{Status: "Webhook received successfully"})
			return
		}

		change, err := event.StatusChange()
		if err != nil {
			slog.WarnContext(r.Context(), "malformed status change", "error", err)
			writeError(w, http.StatusBadRequest, "invalid event data")
			return
		}

		slog.InfoContext(r.Context(), "webhook received",
			"event", event.Event, "uuid", change.UUID, "status", change.Status)
		if !model.IsKnownStatus(change.Status) {
			slog.WarnContext(r.Context(), "unrecognized order status stored verbatim",
				"uuid", change.UUID, "status", change.Status)
		}

		existed := orderSvc.UpdateStatus(change.UUID, change.Status)
		slog.DebugContext(r.Context(), "order status updated", "uuid", change.UUID, "known", existed)

		if change.Status == model.StatusReceived {
			slog.InfoContext(r.Context(), "order received successfully", "uuid", change.UUID)
		}

		writeJSON(w, http.StatusOK, webhookAck{Status: "Webhook received successfully"})
	}
}
