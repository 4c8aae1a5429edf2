package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus is the moderation state gating whether a product is purchasable.
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
)

// Product is owned by the catalog. This service only ever mutates Stock, and
// only inside the checkout transaction.
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string          `gorm:"not null" json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock          int             `gorm:"not null;check:stock >= 0" json:"stock"`
	Status         ProductStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CollaboratorID string          `gorm:"index" json:"collaborator_id"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// Purchasable reports whether the product passed moderation.
func (p *Product) Purchasable() bool {
	return p.Status == ProductStatusApproved
}
