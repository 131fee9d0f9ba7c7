package models

import "time"

// DeliveryStatus represents the states of a delivery job
type DeliveryStatus string

const (
	DeliveryAssigned   DeliveryStatus = "assigned"
	DeliveryPickedUp   DeliveryStatus = "picked_up"
	DeliveryInTransit  DeliveryStatus = "delivering"
	DeliveryCompleted  DeliveryStatus = "completed"
)

// JobReward is the flat reward paid per delivery, in yen.
const JobReward = 500

type Delivery struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	OrderID     uint              `json:"order_id" gorm:"uniqueIndex;not null"`
	DelivererID uint              `json:"deliverer_id" gorm:"not null;index"`
	Deliverer   *DelivererProfile `json:"deliverer,omitempty" gorm:"foreignKey:DelivererID"`
	Status      DeliveryStatus    `json:"status" gorm:"not null;default:'assigned'"`
	CurrentLat  *float64          `json:"current_lat"`
	CurrentLng  *float64          `json:"current_lng"`
	PickupTime  *time.Time        `json:"pickup_time"`
	DeliveredAt *time.Time        `json:"delivered_at"`

	Locations []DeliveryLocation `json:"locations,omitempty" gorm:"foreignKey:DeliveryID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeliveryLocation is an append-only position history row.
type DeliveryLocation struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DeliveryID uint      `json:"delivery_id" gorm:"not null;index"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}
