package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Astemirdum/field-booking/internal/errs"
	"github.com/Astemirdum/field-booking/internal/model"
	"github.com/Astemirdum/field-booking/internal/repository"
	"github.com/Astemirdum/field-booking/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	minDurationHours = 1
	maxDurationHours = 8
)

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	catalog  repository.FieldCatalog
	producer sarama.SyncProducer
	locks    *keyedMutex
}

// NewService wires the booking engine. producer may be nil, in which case
// no events are published.
func NewService(repo repository.Repository, catalog repository.FieldCatalog, producer sarama.SyncProducer, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		catalog:  catalog,
		producer: producer,
		locks:    newKeyedMutex(),
	}
}

// CreateBooking validates the request, checks the requested interval against
// every confirmed booking for the same field and date, and inserts a
// confirmed booking. Intervals are half-open: a booking ending at 15:00 does
// not conflict with one starting at 15:00.
func (s *Service) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (model.Booking, error) {
	start, end, err := bookingInterval(req)
	if err != nil {
		return model.Booking{}, err
	}

	field, err := s.catalog.GetField(ctx, req.FieldID)
	if err != nil {
		return model.Booking{}, err
	}

	// The fetch-check-insert below is not atomic on its own; hold the
	// (field, date) lock across it so concurrent requests for the same slot
	// cannot both pass the overlap check.
	unlock := s.locks.lock(slotKey(req.FieldID, req.BookingDate))
	defer unlock()

	existing, err := s.repo.ListByFieldAndDate(ctx, req.FieldID, req.BookingDate)
	if err != nil {
		return model.Booking{}, err
	}
	for _, b := range existing {
		if start < b.EndTime && end > b.StartTime {
			return model.Booking{}, errs.ErrSlotConflict
		}
	}

	booking, err := s.repo.CreateBooking(ctx, model.Booking{
		Username:    req.Username,
		FieldID:     req.FieldID,
		BookingDate: req.BookingDate,
		StartTime:   start,
		EndTime:     end,
		Duration:    req.Duration,
		TotalPrice:  field.PricePerHour * float64(req.Duration),
		Status:      model.StatusConfirmed,
		Notes:       req.Notes,
	})
	if err != nil {
		return model.Booking{}, err
	}

	s.publish(kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *Service) ListByFieldAndDate(ctx context.Context, fieldID int, date string) ([]model.Booking, error) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, errors.Wrap(errs.ErrInvalidInput, err.Error())
	}
	return s.repo.ListByFieldAndDate(ctx, fieldID, date)
}

func (s *Service) ListByUser(ctx context.Context, username string) ([]model.Booking, error) {
	return s.repo.ListByUser(ctx, username)
}

func (s *Service) ListAll(ctx context.Context) ([]model.Booking, error) {
	return s.repo.ListAll(ctx)
}

// CancelBooking flips the requester's confirmed booking to CANCELLED. The row
// is kept for history; the freed interval becomes bookable again.
func (s *Service) CancelBooking(ctx context.Context, username, bookingUid string) (model.Booking, error) {
	booking, err := s.repo.CancelBooking(ctx, username, bookingUid)
	if err != nil {
		return model.Booking{}, err
	}
	s.publish(kafka.EventBookingCancelled, booking)
	return booking, nil
}

func (s *Service) GetField(ctx context.Context, fieldID int) (model.Field, error) {
	return s.catalog.GetField(ctx, fieldID)
}

func (s *Service) ListFields(ctx context.Context) ([]model.Field, error) {
	return s.catalog.ListFields(ctx)
}

// bookingInterval validates the request fields and computes the half-open
// interval. Hour arithmetic carries into the hour only, the minutes component
// of the start is preserved in the end. An end past 24:00 would need next-day
// semantics the store does not have, so such requests are rejected.
func bookingInterval(req model.CreateBookingRequest) (start, end model.TimeOfDay, err error) {
	if req.Username == "" {
		return 0, 0, errors.Wrap(errs.ErrInvalidInput, "username is required")
	}
	if _, err := time.Parse(time.DateOnly, req.BookingDate); err != nil {
		return 0, 0, errors.Wrap(errs.ErrInvalidInput, err.Error())
	}
	start, err = model.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return 0, 0, errors.Wrap(errs.ErrInvalidInput, err.Error())
	}
	if start >= model.EndOfDay {
		return 0, 0, errors.Wrap(errs.ErrInvalidInput, "start time past end of day")
	}
	if req.Duration < minDurationHours || req.Duration > maxDurationHours {
		return 0, 0, errors.Wrapf(errs.ErrInvalidInput, "duration %d hours: want %d..%d", req.Duration, minDurationHours, maxDurationHours)
	}
	end = start.AddHours(req.Duration)
	if end > model.EndOfDay {
		return 0, 0, errors.Wrap(errs.ErrInvalidInput, "booking may not extend past midnight")
	}
	return start, end, nil
}

func slotKey(fieldID int, date string) string {
	return fmt.Sprintf("%d/%s", fieldID, date)
}

func (s *Service) publish(typ kafka.BookingEventType, booking model.Booking) {
	if s.producer == nil {
		return
	}
	err := kafka.Publish(s.producer, kafka.BookingTopic, kafka.EventBooking{
		Type:        typ,
		BookingUid:  booking.BookingUid,
		Username:    booking.Username,
		FieldID:     booking.FieldID,
		BookingDate: booking.BookingDate,
		StartTime:   booking.StartTime.String(),
		EndTime:     booking.EndTime.String(),
		TotalPrice:  booking.TotalPrice,
		CreatedAt:   booking.CreatedAt,
	})
	if err != nil {
		s.log.Error("publish booking event", zap.String("type", string(typ)), zap.Error(err))
	}
}
