package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/flight-reservation/internal/alias"
	"github.com/iliyamo/flight-reservation/internal/database"
	"github.com/iliyamo/flight-reservation/internal/metrics"
	"github.com/iliyamo/flight-reservation/internal/model"
	"github.com/iliyamo/flight-reservation/internal/repository"
	"github.com/iliyamo/flight-reservation/internal/requestid"
	"github.com/iliyamo/flight-reservation/internal/utils"
)

// CreateRequest is the input of ReservationManager.Create.  SeatClass may
// be any alias the class table knows ("비즈니스", "economy", ...).
type CreateRequest struct {
	CustomerID   string
	FlightNumber string
	DepartureAt  time.Time
	SeatClass    string
	Payment      int64
}

// Delivery states of the reservation confirmation.
const (
	NotifySent    = "sent"
	NotifyQueued  = "queued"
	NotifyFailed  = "failed"
	NotifySkipped = "skipped"
)

// ReservationResult describes a committed reservation.  NotifyStatus,
// Notified and NotifyMessage report the confirmation delivery, which never
// affects the reservation itself.  Notified is true only once the mail has
// actually been handed to the mail provider; a queued confirmation is
// delivered later by the consumer and reports NotifyQueued.
type ReservationResult struct {
	Reservation   model.Reservation `json:"reservation"`
	ID            string            `json:"reservation_id"`
	Message       string            `json:"message"`
	Notified      bool              `json:"email_sent"`
	NotifyStatus  string            `json:"email_status"`
	NotifyMessage string            `json:"email_message"`
}

// ReservationManager creates reservations and lists them.  Every created
// reservation is committed together with the seat decrement it consumes.
type ReservationManager struct {
	st       Stores
	notifier Notifier
	locker   Locker
	now      func() time.Time
}

// NewReservationManager wires a manager.  notifier and locker may be nil.
func NewReservationManager(st Stores, notifier Notifier, locker Locker) *ReservationManager {
	return &ReservationManager{st: st, notifier: notifier, locker: locker, now: time.Now}
}

// Create books one seat of req.SeatClass on the given flight for the
// customer.  Availability and duplicate checks run first and fail fast
// without touching state; the decrement and insert then run as one
// transaction that re-validates both conditions.
func (m *ReservationManager) Create(ctx context.Context, req CreateRequest) (*ReservationResult, error) {
	rid := requestid.FromContext(ctx)
	res, err := m.create(ctx, req)
	metrics.Reservations.WithLabelValues(outcomeOf(err)).Inc()
	if err != nil {
		utils.LogEvent(rid, "booking", "reservation_failed",
			fmt.Sprintf("cno=%s flight=%s kind=%s err=%v", req.CustomerID, req.FlightNumber, KindOf(err), err))
		return nil, err
	}

	out := &ReservationResult{
		Reservation: *res,
		ID:          res.ID(),
		Message:     "reservation completed",
	}
	out.NotifyStatus, out.NotifyMessage = m.notify(ctx, *res)
	out.Notified = out.NotifyStatus == NotifySent
	utils.LogEvent(rid, "booking", "reservation_created",
		fmt.Sprintf("id=%s payment=%d notify=%s", out.ID, res.Payment, out.NotifyStatus))
	return out, nil
}

func (m *ReservationManager) create(ctx context.Context, req CreateRequest) (*model.Reservation, error) {
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.FlightNumber = strings.TrimSpace(req.FlightNumber)
	switch {
	case req.CustomerID == "":
		return nil, invalid("customer id is required")
	case req.FlightNumber == "":
		return nil, invalid("flight number is required")
	case req.DepartureAt.IsZero():
		return nil, invalid("departure date time is required")
	case strings.TrimSpace(req.SeatClass) == "":
		return nil, invalid("seat class is required")
	case req.Payment < 0:
		return nil, invalid("payment must not be negative")
	}
	key := model.SeatKey{
		FlightNumber: req.FlightNumber,
		DepartureAt:  req.DepartureAt,
		SeatClass:    alias.SeatClass(req.SeatClass),
	}

	available, err := m.st.Seats.GetAvailable(ctx, key)
	if err != nil {
		return nil, newError(KindStorage, "error during reservation", err)
	}
	if available <= 0 {
		return nil, newError(KindExhausted, "no seats available", nil)
	}
	exists, err := m.st.Reservations.Exists(ctx, req.CustomerID, key)
	if err != nil {
		return nil, newError(KindStorage, "error during reservation", err)
	}
	if exists {
		return nil, newError(KindConflict, "duplicate reservation", nil)
	}

	if m.locker != nil {
		release, ok, err := m.locker.Acquire(ctx, lockKey(req.CustomerID, key))
		switch {
		case err != nil:
			// The lock only dampens double submits; the transaction below
			// stays correct without it.
			utils.LogEvent(requestid.FromContext(ctx), "booking", "lock_unavailable", err.Error())
		case !ok:
			return nil, newError(KindConflict, "reservation already in progress", nil)
		default:
			defer release()
		}
	}

	res := model.Reservation{
		CustomerID:   req.CustomerID,
		FlightNumber: key.FlightNumber,
		DepartureAt:  key.DepartureAt,
		SeatClass:    key.SeatClass,
		Payment:      req.Payment,
		ReservedAt:   m.now(),
	}
	err = database.WithTx(ctx, m.st.DB, func(tx *sql.Tx) error {
		if err := m.st.Seats.ReserveSeatTx(ctx, tx, key); err != nil {
			return err
		}
		return m.st.Reservations.CreateTx(ctx, tx, &res)
	})
	switch {
	case err == nil:
		return &res, nil
	case errors.Is(err, repository.ErrSeatsExhausted):
		return nil, newError(KindExhausted, "no seats available", err)
	case errors.Is(err, repository.ErrSeatNotFound):
		return nil, newError(KindNotFound, "seat inventory not found", err)
	case errors.Is(err, repository.ErrDuplicateReservation):
		return nil, newError(KindConflict, "duplicate reservation", err)
	default:
		return nil, newError(KindStorage, "error during reservation", err)
	}
}

// notify sends the confirmation and returns its delivery status.  Lookups
// feeding the payload are best effort: a missing flight row still produces
// a message with blanks.
func (m *ReservationManager) notify(ctx context.Context, res model.Reservation) (string, string) {
	if m.notifier == nil {
		metrics.Notifications.WithLabelValues(NotifySkipped).Inc()
		return NotifySkipped, "notifications disabled"
	}
	cust, err := m.st.Customers.GetByCNO(ctx, res.CustomerID)
	if err != nil || cust.Email == "" {
		metrics.Notifications.WithLabelValues(NotifySkipped).Inc()
		return NotifySkipped, "customer email unavailable"
	}
	info := model.FlightInfo{
		CustomerID:   res.CustomerID,
		FlightNumber: res.FlightNumber,
		DepartureAt:  res.DepartureAt,
		SeatClass:    res.SeatClass,
		Price:        res.Payment,
	}
	if f, err := m.st.Flights.GetByKey(ctx, res.FlightNumber, res.DepartureAt); err == nil {
		info.Airline = f.Airline
		info.DepartureAirport = f.DepartureAirport
		info.ArrivalAt = f.ArrivalAt
		info.ArrivalAirport = f.ArrivalAirport
	}
	ok, msg := m.notifier.NotifyReservation(ctx, cust.Email, cust.Name, info)
	status := NotifyFailed
	switch {
	case ok && isAsync(m.notifier):
		status = NotifyQueued
	case ok:
		status = NotifySent
	}
	metrics.Notifications.WithLabelValues(status).Inc()
	return status, msg
}

// GetAvailable returns the remaining seats of a flight and class, 0 when
// the inventory row does not exist.
func (m *ReservationManager) GetAvailable(ctx context.Context, flightNumber string, departure time.Time, seatClass string) (int, error) {
	if strings.TrimSpace(flightNumber) == "" || departure.IsZero() {
		return 0, invalid("flight number and departure date time are required")
	}
	if strings.TrimSpace(seatClass) == "" {
		return 0, invalid("seat class is required")
	}
	key := model.SeatKey{
		FlightNumber: strings.TrimSpace(flightNumber),
		DepartureAt:  departure,
		SeatClass:    alias.SeatClass(seatClass),
	}
	n, err := m.st.Seats.GetAvailable(ctx, key)
	if err != nil {
		return 0, newError(KindStorage, "error reading seat availability", err)
	}
	return n, nil
}

// ListForCustomer returns the customer's reservations, earliest departure
// first.
func (m *ReservationManager) ListForCustomer(ctx context.Context, customerID string, f HistoryFilter) ([]model.Reservation, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer id is required")
	}
	list, err := m.st.Reservations.ListByCustomer(ctx, customerID, f)
	if err != nil {
		return nil, newError(KindStorage, "error reading reservations", err)
	}
	return list, nil
}

func lockKey(cno string, key model.SeatKey) string {
	return fmt.Sprintf("%s:%s:%s:%s", cno, key.FlightNumber, key.DepartureAt.UTC().Format("20060102T150405"), key.SeatClass)
}
