package handler

import (
	"context"

	"github.com/Astemirdum/field-booking/internal/model"
	"github.com/Astemirdum/field-booking/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookingService interface {
	CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.Booking, error)
	ListByFieldAndDate(ctx context.Context, fieldID int, date string) ([]model.Booking, error)
	ListByUser(ctx context.Context, username string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	CancelBooking(ctx context.Context, username, bookingUid string) (model.Booking, error)
	GetField(ctx context.Context, fieldID int) (model.Field, error)
	ListFields(ctx context.Context) ([]model.Field, error)
}

var _ BookingService = (*service.Service)(nil)
