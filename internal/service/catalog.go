package service

import (
	"time"

	"arcrelay/internal/model"
)

const orderIDLayout = "20060102150405"

// NewOrderID derives an invoice id from t at one-second resolution.
// Two calls within the same second collide.
func NewOrderID(t time.Time) string {
	return "INV-" + t.UTC().Format(orderIDLayout)
}

// NewCreateOrderRequest builds the fixed demo order. telegramID may be nil.
func NewCreateOrderRequest(now time.Time, telegramID *string) model.CreateOrderRequest {
	return model.CreateOrderRequest{
		Title:    "Premium Subscription Box",
		OrderID:  NewOrderID(now),
		Currency: "TON",
		Items: []model.Item{
			{
				Title:       "Exclusive Travel Package",
				Description: "A luxurious 5-day trip to Bali with first-class accommodation.",
				ImageURL:    "https://www.luxurytravelmagazine.com/files/610/1/2901/Kayon-Jungle-aerial_reg.jpg",
				Price:       0.5,
				Count:       1,
				ItemID:      "id-987654",
			},
			{
				Title:       "Gourmet Dinner Experience",
				Description: "A 7-course gourmet dinner at a Michelin-starred restaurant.",
				ImageURL:    "https://www.luxurytravelmagazine.com/files/610/2/2572/Samabe-restaurant_big_reg.jpg",
				Price:       0.15,
				Count:       2,
				ItemID:      "id-654321",
			},
		},
		Meta:     model.OrderMeta{TelegramID: telegramID},
		Captured: false,
	}
}
