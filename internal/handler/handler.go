package handler

import (
	"net/http"
	"strconv"

	md "github.com/Astemirdum/field-booking/pkg/middleware"

	"github.com/Astemirdum/field-booking/internal/errs"
	"github.com/Astemirdum/field-booking/internal/model"
	"github.com/Astemirdum/field-booking/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	bookingSvc BookingService
	log        *zap.Logger
}

func New(bookingSvc BookingService, log *zap.Logger) *Handler {
	return &Handler{
		bookingSvc: bookingSvc,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/fields", h.ListFields)
	api.GET("/fields/:fieldId", h.GetField)

	api.POST("/bookings", h.CreateBooking, middlewareUserName)
	api.GET("/bookings/field/:fieldId", h.GetFieldBookings)
	api.GET("/bookings/my", h.GetUserBookings, middlewareUserName)
	api.GET("/bookings", h.GetAllBookings)
	api.POST("/bookings/:bookingUid/cancel", h.CancelBooking, middlewareUserName)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateBooking(c echo.Context) error {
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Username = getUserName(c)
	if err := c.Validate(req); err != nil {
		return err
	}

	booking, err := h.bookingSvc.CreateBooking(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *Handler) GetFieldBookings(c echo.Context) error {
	fieldID, err := strconv.Atoi(c.Param("fieldId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fieldId")
	}
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	bookings, err := h.bookingSvc.ListByFieldAndDate(c.Request().Context(), fieldID, date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetUserBookings(c echo.Context) error {
	bookings, err := h.bookingSvc.ListByUser(c.Request().Context(), getUserName(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) GetAllBookings(c echo.Context) error {
	bookings, err := h.bookingSvc.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) CancelBooking(c echo.Context) error {
	bookingUid := c.Param("bookingUid")
	if bookingUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "bookingUid is empty")
	}
	booking, err := h.bookingSvc.CancelBooking(c.Request().Context(), getUserName(c), bookingUid)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetField(c echo.Context) error {
	fieldID, err := strconv.Atoi(c.Param("fieldId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fieldId")
	}
	field, err := h.bookingSvc.GetField(c.Request().Context(), fieldID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, field)
}

func (h *Handler) ListFields(c echo.Context) error {
	fields, err := h.bookingSvc.ListFields(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, fields)
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrSlotConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
