package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Statuses reported by ArcPay. Any other value is stored verbatim.
const (
	StatusCreated    = "created"
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusReceived   = "received"
	StatusCaptured   = "captured"
	StatusFailed     = "failed"
	StatusCanceled   = "canceled"
)

// IsKnownStatus reports whether status is one ArcPay documents.
func IsKnownStatus(status string) bool {
	switch status {
	case StatusCreated, StatusPending, StatusProcessing, StatusReceived,
		StatusCaptured, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

const EventOrderStatusChanged = "order.status.changed"

var ErrMalformedEvent = errors.New("malformed webhook event")

type Order struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

// WebhookEvent is the envelope ArcPay posts to /webhook. Data stays raw
// until the event type is known.
type WebhookEvent struct {
	Event string
	Data  json.RawMessage
}

// ParseWebhookEvent decodes a webhook body. The body must be a JSON object;
// a missing or non-string "event" yields an empty Event.
func ParseWebhookEvent(body []byte) (WebhookEvent, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return WebhookEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if envelope == nil {
		return WebhookEvent{}, fmt.Errorf("%w: body is not an object", ErrMalformedEvent)
	}

	var e WebhookEvent
	if raw, ok := envelope["event"]; ok {
		_ = json.Unmarshal(raw, &e.Event)
	}
	e.Data = envelope["data"]
	return e, nil
}

type statusChangedData struct {
	UUID   *string `json:"uuid"`
	Status *string `json:"status"`
}

// StatusChange extracts data.uuid and data.status from an
// order.status.changed event. Both must be present strings.
func (e WebhookEvent) StatusChange() (Order, error) {
	if len(e.Data) == 0 {
		return Order{}, fmt.Errorf("%w: missing data", ErrMalformedEvent)
	}

	var d statusChangedData
	if err := json.Unmarshal(e.Data, &d); err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if d.UUID == nil || *d.UUID == "" {
		return Order{}, fmt.Errorf("%w: missing data.uuid", ErrMalformedEvent)
	}
	if d.Status == nil {
		return Order{}, fmt.Errorf("%w: missing data.status", ErrMalformedEvent)
	}

	return Order{UUID: *d.UUID, Status: *d.Status}, nil
}
