package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"arcrelay/internal/model"
	"arcrelay/internal/service"
)

const maxCreateBody = 64 << 10

// OrderCreator is the upstream that assigns order ids.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error)
}

func CreateOrderHandler(orderSvc *service.OrderService, creator OrderCreator, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := service.NewCreateOrderRequest(now(), telegramID(r))

		// The store is not touched until the provider has answered.
		order, err := creator.CreateOrder(r.Context(), req)
		if err != nil {
			slog.ErrorContext(r.Context(), "order create failed", "order_id", req.OrderID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to create order")
			return
		}

		orderSvc.Save(order)
		slog.InfoContext(r.Context(), "order created", "order_id", req.OrderID, "uuid", order.UUID, "status", order.Status)

		writeJSON(w, http.StatusOK, order)
	}
}

// ListOrdersHandler dumps the whole order table keyed by order id.
func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, orderSvc.Snapshot())
	}
}

// telegramID looks for the customer reference in the query, a form body,
// or a JSON body under "telegram_id" or "userId".
func telegramID(r *http.Request) *string {
	if v := r.FormValue("telegram_id"); v != "" {
		return &v
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" || r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCreateBody))
	if err != nil || len(body) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		slog.DebugContext(r.Context(), "ignoring unparsable create body", "error", err)
		return nil
	}

	for _, key := range []string{"telegram_id", "userId"} {
		if v, ok := scalarString(fields[key]); ok {
			return &v
		}
	}
	return nil
}

// scalarString renders a JSON string or number as text.
func scalarString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}
