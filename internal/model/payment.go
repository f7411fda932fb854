package model

import "time"

const (
	PaymentStatusPending   = "Pending"
	PaymentStatusSuccess   = "Success"
	PaymentStatusFailed    = "Failed"
	PaymentStatusCancelled = "Cancelled"
)

const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanPro     = "pro"
)

// Payment tracks one purchase through the gateway, correlated to its
// asynchronous callbacks by the globally unique transaction id.
type Payment struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	UserID           uint       `json:"user_id" gorm:"not null;index"`
	Amount           float64    `json:"amount" gorm:"not null"`
	Currency         string     `json:"currency" gorm:"default:'BDT'"`
	TransactionID    string     `json:"transaction_id" gorm:"not null;uniqueIndex"`
	PaymentStatus    string     `json:"payment_status" gorm:"default:'Pending'"`
	PaymentGateway   string     `json:"payment_gateway" gorm:"default:'SSLCommerz'"`
	SubscriptionType string     `json:"subscription_type" gorm:"not null"` // "basic", "premium", "pro"
	ValidTill        *time.Time `json:"valid_till,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
