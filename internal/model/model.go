package model

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

type Field struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	PricePerHour float64   `json:"pricePerHour" db:"price_per_hour"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Booking struct {
	ID          int       `json:"-" db:"id"`
	BookingUid  string    `json:"bookingUid" db:"booking_uid"`
	Username    string    `json:"username" db:"username"`
	FieldID     int       `json:"fieldId" db:"field_id"`
	BookingDate string    `json:"bookingDate" db:"booking_date"`
	StartTime   TimeOfDay `json:"startTime" db:"start_time"`
	EndTime     TimeOfDay `json:"endTime" db:"end_time"`
	Duration    int       `json:"duration" db:"duration"`
	TotalPrice  float64   `json:"totalPrice" db:"total_price"`
	Status      Status    `json:"status" db:"status"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateBookingRequest struct {
	FieldID     int    `json:"fieldId" validate:"required"`
	BookingDate string `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	Duration    int    `json:"duration" validate:"required,min=1,max=8"`
	Notes       string `json:"notes,omitempty" validate:"omitempty,max=500"`
	Username    string `json:"-" validate:"required"`
}
