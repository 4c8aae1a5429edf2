package models

import "time"

// OrderPlacedEvent is published to Kafka after a checkout commits.
type OrderPlacedEvent struct {
	Event       string           `json:"event"`
	OrderID     string           `json:"order_id"`
	UserID      string           `json:"user_id"`
	TotalAmount string           `json:"total_amount"`
	Items       []OrderEventItem `json:"items"`
	Timestamp   time.Time        `json:"timestamp"`
}

type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}
