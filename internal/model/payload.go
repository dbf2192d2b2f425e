package model

// CreateOrderRequest is the body sent to ArcPay's order endpoint.
type CreateOrderRequest struct {
	Title    string    `json:"title"`
	OrderID  string    `json:"orderId"`
	Currency string    `json:"currency"`
	Items    []Item    `json:"items"`
	Meta     OrderMeta `json:"meta"`
	Captured bool      `json:"captured"`
}

type Item struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price"`
	Count       int     `json:"count"`
	ItemID      string  `json:"itemId"`
}

type OrderMeta struct {
	TelegramID *string `json:"telegram_id"`
}
