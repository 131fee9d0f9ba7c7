package models

import "time"

// WorkStatus tracks a deliverer's availability for new jobs
type WorkStatus string

const (
	WorkOnline  WorkStatus = "online"
	WorkOffline WorkStatus = "offline"
	WorkBusy    WorkStatus = "busy"
)

type RequesterProfile struct {
	ID               uint               `json:"id" gorm:"primaryKey"`
	UserID           uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	User             User               `json:"-" gorm:"foreignKey:UserID"`
	Name             string             `json:"name"`
	PhoneNumber      string             `json:"phone_number"`
	DefaultAddressID *uint              `json:"default_address_id"`
	Addresses        []RequesterAddress `json:"addresses,omitempty" gorm:"foreignKey:RequesterID"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type RequesterAddress struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	RequesterID  uint     `json:"requester_id" gorm:"not null;index"`
	Label        string   `json:"label"`
	PostalCode   string   `json:"postal_code"`
	Prefecture   string   `json:"prefecture"`
	City         string   `json:"city"`
	AddressLine1 string   `json:"address_line1"`
	AddressLine2 string   `json:"address_line2"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	IsDefault    bool     `json:"is_default" gorm:"default:false"`
}

type DelivererProfile struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User       `json:"-" gorm:"foreignKey:UserID"`
	Name        string     `json:"name"`
	PhoneNumber string     `json:"phone_number"`
	WorkStatus  WorkStatus `json:"work_status" gorm:"default:'offline'"`
	VehicleType string     `json:"vehicle_type"`
	CurrentLat  *float64   `json:"current_lat"`
	CurrentLng  *float64   `json:"current_lng"`

	// Banking fields for payouts
	BankName          string `json:"bank_name"`
	BankBranch        string `json:"bank_branch"`
	BankAccountType   string `json:"bank_account_type"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountHolder string `json:"bank_account_holder"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StoreProfile struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User          User      `json:"-" gorm:"foreignKey:UserID"`
	StoreName     string    `json:"store_name"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phone_number"`
	Description   string    `json:"description"`
	BusinessHours string    `json:"business_hours"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	IsOpen        bool      `json:"is_open" gorm:"default:true"`
	Products      []Product `json:"products,omitempty" gorm:"foreignKey:StoreID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
