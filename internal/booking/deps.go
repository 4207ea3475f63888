package booking

import (
	"context"
	"database/sql"

	"github.com/iliyamo/flight-reservation/internal/model"
	"github.com/iliyamo/flight-reservation/internal/repository"
)

// Stores bundles the repositories the booking components share.  All of
// them must be bound to DB, which is also where atomic units are opened.
type Stores struct {
	DB            *sql.DB
	Seats         *repository.SeatRepo
	Reservations  *repository.ReservationRepo
	Cancellations *repository.CancellationRepo
	Flights       *repository.FlightRepo
	Customers     *repository.CustomerRepo
}

// NewStores builds every repository on db.
func NewStores(db *sql.DB) Stores {
	return Stores{
		DB:            db,
		Seats:         repository.NewSeatRepo(db),
		Reservations:  repository.NewReservationRepo(db),
		Cancellations: repository.NewCancellationRepo(db),
		Flights:       repository.NewFlightRepo(db),
		Customers:     repository.NewCustomerRepo(db),
	}
}

// Notifier delivers the reservation confirmation.  It reports whether
// delivery succeeded and a short status message; it must not panic and is
// never retried.
type Notifier interface {
	NotifyReservation(ctx context.Context, email, name string, info model.FlightInfo) (bool, string)
}

// AsyncNotifier is implemented by notifiers that only enqueue the
// confirmation; a successful call then means "queued", not "sent".
type AsyncNotifier interface {
	Async() bool
}

func isAsync(n Notifier) bool {
	a, ok := n.(AsyncNotifier)
	return ok && a.Async()
}

// EventPublisher announces committed cancellations to other services.
type EventPublisher interface {
	PublishReservationCancelled(ctx context.Context, c model.Cancellation) error
}

// Locker guards a key against concurrent double submission.  ok is false
// when another holder owns the key.  release must be safe to call once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// HistoryFilter limits customer listings to departures in [From, To).
// Zero bounds are open.
type HistoryFilter = repository.DepartureRange
