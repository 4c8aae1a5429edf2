package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatusRegistered is the status every order carries at creation. The
// label may change later (shipped, delivered) but nothing else on an order is
// ever mutated after checkout.
const OrderStatusRegistered = "registered"

// Order is the append-only record of one successful checkout.
type Order struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      string          `gorm:"not null;index" json:"user_id"`
	Status      string          `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Details     []OrderDetail   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"details"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// OrderDetail snapshots one cart line at the moment of purchase. Price and
// ProductTitle are copied from the product row at commit time and never
// re-derived; they are the only historical record of what was charged.
type OrderDetail struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductTitle string          `gorm:"not null" json:"product_title"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}
