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

var errSeatRowMissing = errors.New("seat inventory row missing")

// CancelRequest is the input of CancellationEngine.Cancel.
// OriginalPayment overrides the payment stored on the reservation when
// set.
type CancelRequest struct {
	CustomerID      string
	FlightNumber    string
	DepartureAt     time.Time
	SeatClass       string
	OriginalPayment *int64
}

// CancellationResult describes a committed cancellation.
type CancellationResult struct {
	Cancellation        model.Cancellation `json:"cancellation"`
	Payment             int64              `json:"payment"`
	Penalty             int64              `json:"penalty"`
	DaysBeforeDeparture int                `json:"days_before_departure"`
	Message             string             `json:"message"`
}

// StatsReport is the administrator view of cancellations.
type StatsReport struct {
	model.CancellationStats
	TopRefunds []model.CustomerRefundSummary `json:"top_refunds"`
}

// CancellationEngine cancels reservations under the penalty schedule.  The
// cancellation record, the reservation delete and the seat release commit
// together or not at all.
type CancellationEngine struct {
	st     Stores
	events EventPublisher
	now    func() time.Time
}

// NewCancellationEngine wires an engine.  events may be nil.
func NewCancellationEngine(st Stores, events EventPublisher) *CancellationEngine {
	return &CancellationEngine{st: st, events: events, now: time.Now}
}

// Cancel cancels the customer's reservation for the given flight and
// class.  Callers are expected to reject departures that are not in the
// future before calling.
func (e *CancellationEngine) Cancel(ctx context.Context, req CancelRequest) (*CancellationResult, error) {
	rid := requestid.FromContext(ctx)
	out, err := e.cancel(ctx, req)
	metrics.Cancellations.WithLabelValues(outcomeOf(err)).Inc()
	if err != nil {
		utils.LogEvent(rid, "booking", "cancellation_failed",
			fmt.Sprintf("cno=%s flight=%s kind=%s err=%v", req.CustomerID, req.FlightNumber, KindOf(err), err))
		return nil, err
	}
	metrics.RefundAmount.Add(float64(out.Cancellation.Refund))
	utils.LogEvent(rid, "booking", "reservation_cancelled",
		fmt.Sprintf("cno=%s flight=%s days=%d refund=%d", out.Cancellation.CustomerID,
			out.Cancellation.FlightNumber, out.DaysBeforeDeparture, out.Cancellation.Refund))

	if e.events != nil {
		if err := e.events.PublishReservationCancelled(ctx, out.Cancellation); err != nil {
			utils.LogEvent(rid, "booking", "cancel_event_failed", err.Error())
		}
	}
	return out, nil
}

func (e *CancellationEngine) cancel(ctx context.Context, req CancelRequest) (*CancellationResult, error) {
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
	case req.OriginalPayment != nil && *req.OriginalPayment < 0:
		return nil, invalid("payment must not be negative")
	}
	key := model.SeatKey{
		FlightNumber: req.FlightNumber,
		DepartureAt:  req.DepartureAt,
		SeatClass:    alias.SeatClass(req.SeatClass),
	}

	res, err := e.st.Reservations.Get(ctx, req.CustomerID, key)
	if errors.Is(err, repository.ErrReservationNotFound) {
		return nil, newError(KindNotFound, "reservation not found", err)
	}
	if err != nil {
		return nil, newError(KindStorage, "error during cancellation", err)
	}

	now := e.now()
	payment := res.Payment
	if req.OriginalPayment != nil {
		payment = *req.OriginalPayment
	}
	days := DaysBeforeDeparture(res.DepartureAt, now)
	c := model.Cancellation{
		CustomerID:   res.CustomerID,
		FlightNumber: res.FlightNumber,
		DepartureAt:  res.DepartureAt,
		SeatClass:    res.SeatClass,
		Refund:       Refund(payment, days),
		CancelledAt:  now,
	}

	err = database.WithTx(ctx, e.st.DB, func(tx *sql.Tx) error {
		if err := e.st.Cancellations.CreateTx(ctx, tx, &c); err != nil {
			return err
		}
		if err := e.st.Reservations.DeleteTx(ctx, tx, c.CustomerID, key); err != nil {
			return err
		}
		found, err := e.st.Seats.AdjustTx(ctx, tx, key, +1)
		if err != nil {
			return err
		}
		if !found {
			return errSeatRowMissing
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrReservationNotFound):
		return nil, newError(KindNotFound, "reservation not found", err)
	case errors.Is(err, errSeatRowMissing):
		return nil, newError(KindNotFound, "seat inventory not found", err)
	case errors.Is(err, repository.ErrConflict):
		return nil, newError(KindConflict, "cancellation already recorded", err)
	default:
		return nil, newError(KindStorage, "error during cancellation", err)
	}

	return &CancellationResult{
		Cancellation:        c,
		Payment:             payment,
		Penalty:             Penalty(payment, days),
		DaysBeforeDeparture: days,
		Message:             fmt.Sprintf("reservation cancelled, refund amount %s", utils.FormatWon(c.Refund)),
	}, nil
}

// ListForCustomer returns the customer's cancellations, most recent first.
func (e *CancellationEngine) ListForCustomer(ctx context.Context, customerID string, f HistoryFilter) ([]model.Cancellation, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, invalid("customer id is required")
	}
	list, err := e.st.Cancellations.ListByCustomer(ctx, customerID, f)
	if err != nil {
		return nil, newError(KindStorage, "error reading cancellations", err)
	}
	return list, nil
}

// Stats aggregates every cancellation and ranks the customers with the
// largest refunds.
func (e *CancellationEngine) Stats(ctx context.Context, top int) (*StatsReport, error) {
	s, err := e.st.Cancellations.Stats(ctx)
	if err != nil {
		return nil, newError(KindStorage, "error reading cancellation statistics", err)
	}
	ranking, err := e.st.Cancellations.RefundsByCustomer(ctx, top)
	if err != nil {
		return nil, newError(KindStorage, "error reading cancellation statistics", err)
	}
	return &StatsReport{CancellationStats: s, TopRefunds: ranking}, nil
}
