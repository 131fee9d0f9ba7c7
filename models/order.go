package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderAccepted       OrderStatus = "accepted"
	OrderCooking        OrderStatus = "cooking"
	OrderReadyForPickup OrderStatus = "ready_for_pickup"
	OrderDelivering     OrderStatus = "delivering"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

// DeliveryFee is the flat fee added to every order, in yen.
const DeliveryFee = 300

type Order struct {
	ID           uint              `json:"id" gorm:"primaryKey"`
	RequesterID  uint              `json:"requester_id" gorm:"not null;index"`
	Requester    *RequesterProfile `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	StoreID      uint              `json:"store_id" gorm:"not null;index"`
	Store        *StoreProfile     `json:"store,omitempty" gorm:"foreignKey:StoreID"`
	Status       OrderStatus       `json:"status" gorm:"not null;default:'pending'"`
	Subtotal     int               `json:"subtotal"`
	DeliveryFee  int               `json:"delivery_fee"`
	TotalAmount  int               `json:"total_amount"`

	DeliveryAddress string   `json:"delivery_address"`
	DeliveryLat     *float64 `json:"delivery_lat"`
	DeliveryLng     *float64 `json:"delivery_lng"`
	Note            string   `json:"note"`

	Details       []OrderDetail        `json:"details,omitempty" gorm:"foreignKey:OrderID"`
	Delivery      *Delivery            `json:"delivery,omitempty" gorm:"foreignKey:OrderID"`
	Payment       *Payment             `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}

// OrderDetail snapshots product name and unit price at order time and is
// immutable afterwards. It intentionally keeps no hard foreign key to
// products so the snapshot survives product deletion.
type OrderDetail struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	OrderID     uint   `json:"order_id" gorm:"not null;index"`
	ProductID   uint   `json:"product_id" gorm:"not null"`
	ProductName string `json:"product_name"`
	UnitPrice   int    `json:"unit_price" gorm:"not null"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	Subtotal    int    `json:"subtotal"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
