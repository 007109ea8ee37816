package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Astemirdum/field-booking/internal/errs"
	"github.com/Astemirdum/field-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error)
	ListByFieldAndDate(ctx context.Context, fieldID int, date string) ([]model.Booking, error)
	ListByUser(ctx context.Context, username string) ([]model.Booking, error)
	ListAll(ctx context.Context) ([]model.Booking, error)
	CancelBooking(ctx context.Context, username, bookingUid string) (model.Booking, error)
}

type FieldCatalog interface {
	GetField(ctx context.Context, fieldID int) (model.Field, error)
	ListFields(ctx context.Context) ([]model.Field, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	bookingTableName = `booking`
	fieldTableName   = `field`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bookingColumns = []string{
	"id", "booking_uid", "username", "field_id", "booking_date",
	"start_time", "end_time", "duration", "total_price", "status", "notes",
	"created_at", "updated_at",
}

func (r *repository) CreateBooking(ctx context.Context, booking model.Booking) (model.Booking, error) {
	now := time.Now().UTC()
	q, args, err := qb.Insert(bookingTableName).
		Columns("booking_uid", "username", "field_id", "booking_date",
			"start_time", "end_time", "start_min", "end_min",
			"duration", "total_price", "status", "notes", "created_at", "updated_at").
		Values(uuid.New(), booking.Username, booking.FieldID, booking.BookingDate,
			booking.StartTime, booking.EndTime, int(booking.StartTime), int(booking.EndTime),
			booking.Duration, booking.TotalPrice, booking.Status, booking.Notes, now, now).
		Suffix("returning " + columns(bookingColumns)).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var res model.Booking
	if err := r.db.GetContext(ctx, &res, q, args...); err != nil {
		r.log.Error("CreateBooking", zap.String("q", q), zap.Any("args", args))
		return model.Booking{}, storeErr(err)
	}
	return res, nil
}

func (r *repository) ListByFieldAndDate(ctx context.Context, fieldID int, date string) ([]model.Booking, error) {
	q, args, err := qb.Select(bookingColumns...).
		From(bookingTableName).
		Where(sq.Eq{"field_id": fieldID}).
		Where(sq.Eq{"booking_date": date}).
		Where(sq.Eq{"status": model.StatusConfirmed}).
		OrderBy("start_min asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Booking
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (r *repository) ListByUser(ctx context.Context, username string) ([]model.Booking, error) {
	q, args, err := qb.Select(bookingColumns...).
		From(bookingTableName).
		Where(sq.Eq{"username": username}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Booking
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (r *repository) ListAll(ctx context.Context) ([]model.Booking, error) {
	q, args, err := qb.Select(bookingColumns...).
		From(bookingTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Booking
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

func (r *repository) CancelBooking(ctx context.Context, username, bookingUid string) (model.Booking, error) {
	q, args, err := qb.Update(bookingTableName).
		Set("status", model.StatusCancelled).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"booking_uid": bookingUid}).
		Where(sq.Eq{"username": username}).
		Where(sq.Eq{"status": model.StatusConfirmed}).
		Suffix("returning " + columns(bookingColumns)).
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var res model.Booking
	if err := r.db.GetContext(ctx, &res, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, storeErr(err)
	}
	return res, nil
}

func (r *repository) GetField(ctx context.Context, fieldID int) (model.Field, error) {
	q, args, err := qb.Select("id", "name", "description", "price_per_hour", "is_active", "created_at").
		From(fieldTableName).
		Where(sq.Eq{"id": fieldID}).
		Where(sq.Eq{"is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Field{}, err
	}
	var field model.Field
	if err := r.db.GetContext(ctx, &field, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Field{}, errs.ErrNotFound
		}
		return model.Field{}, storeErr(err)
	}
	return field, nil
}

func (r *repository) ListFields(ctx context.Context) ([]model.Field, error) {
	q, args, err := qb.Select("id", "name", "description", "price_per_hour", "is_active", "created_at").
		From(fieldTableName).
		Where(sq.Eq{"is_active": true}).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var fields []model.Field
	if err := r.db.SelectContext(ctx, &fields, q, args...); err != nil {
		return nil, storeErr(err)
	}
	return fields, nil
}

// storeErr classifies a driver error. The booking table carries a gist
// exclusion constraint over (field_id, booking_date, [start_min, end_min))
// for CONFIRMED rows, so a violation here is a lost race on the same slot.
func storeErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation, pgerrcode.UniqueViolation:
			return errs.ErrSlotConflict
		}
	}
	return errors.Wrap(errs.ErrStoreUnavailable, err.Error())
}

func columns(cols []string) string {
	return strings.Join(cols, ", ")
}
