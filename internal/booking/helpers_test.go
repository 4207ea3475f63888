package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-reservation/internal/model"
)

var (
	departure = time.Date(2026, 11, 20, 10, 30, 0, 0, time.UTC)
	fixedNow  = time.Date(2026, 10, 31, 10, 30, 0, 0, time.UTC)
)

var reservationCols = []string{"cno", "flight_number", "departure_date_time", "seat_class", "payment", "reserve_date_time"}

func newStores(t *testing.T) (Stores, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStores(db), mock
}

type fakeNotifier struct {
	mu    sync.Mutex
	ok    bool
	msg   string
	calls []model.FlightInfo
	to    []string
}

func (f *fakeNotifier) NotifyReservation(_ context.Context, email, _ string, info model.FlightInfo) (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, info)
	f.to = append(f.to, email)
	return f.ok, f.msg
}

type fakePublisher struct {
	events []model.Cancellation
	err    error
}

func (f *fakePublisher) PublishReservationCancelled(_ context.Context, c model.Cancellation) error {
	f.events = append(f.events, c)
	return f.err
}

// queueingNotifier only enqueues, like the RabbitMQ publisher.
type queueingNotifier struct{ fakeNotifier }

func (*queueingNotifier) Async() bool { return true }

type fakeLocker struct {
	held     bool
	released int
	keys     []string
}

func (f *fakeLocker) Acquire(_ context.Context, key string) (func(), bool, error) {
	f.keys = append(f.keys, key)
	if f.held {
		return nil, false, nil
	}
	return func() { f.released++ }, true, nil
}
