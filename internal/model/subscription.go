package model

import "time"

const (
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)

// Subscription is a time-bounded access grant created from a successful
// payment. The validity window is fixed at creation and never recomputed.
type Subscription struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	PlanType   string    `json:"plan_type" gorm:"not null"` // "basic", "premium", "pro"
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date" gorm:"not null;index"`
	Status     string    `json:"status" gorm:"default:'active';index"`
	AmountPaid float64   `json:"amount_paid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
