package models

import "time"

// PaymentStatus represents the states of a payment record
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	OrderID   uint          `json:"order_id" gorm:"uniqueIndex;not null"`
	Amount    int           `json:"amount" gorm:"not null"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status" gorm:"default:'pending'"`
	PaidAt    *time.Time    `json:"paid_at"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Payout aggregates delivery rewards owed to a deliverer over a period.
type Payout struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DelivererID uint      `json:"deliverer_id" gorm:"not null;index"`
	Amount      int       `json:"amount" gorm:"not null"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Status      string    `json:"status" gorm:"default:'pending'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Sale records a store's share of a completed order.
type Sale struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StoreID    uint      `json:"store_id" gorm:"not null;index"`
	OrderID    uint      `json:"order_id" gorm:"not null"`
	Amount     int       `json:"amount" gorm:"not null"`
	RecordedOn time.Time `json:"recorded_on"`
	CreatedAt  time.Time `json:"created_at"`
}
