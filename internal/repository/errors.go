// Package repository implements MySQL-backed data access for flights,
// seat inventory, reservations, cancellations and customers.
//
// The sentinel errors below let the booking layer distinguish failure
// scenarios without inspecting driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is the generic lookup miss.  The more specific sentinels
// wrap it so errors.Is(err, ErrNotFound) matches any of them.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with an existing row.
var ErrConflict = errors.New("conflict")

var (
	ErrFlightNotFound       = notFound("flight")
	ErrSeatNotFound         = notFound("seat inventory")
	ErrReservationNotFound  = notFound("reservation")
	ErrCustomerNotFound     = notFound("customer")
	ErrDuplicateReservation = conflict("reservation already exists")
	ErrDuplicateCustomer    = conflict("customer already exists")
)

// ErrSeatsExhausted is returned by a conditional decrement that found the
// inventory row already at zero.
var ErrSeatsExhausted = errors.New("no seats available")

type sentinel struct {
	msg  string
	kind error
}

func (e *sentinel) Error() string { return e.msg }
func (e *sentinel) Unwrap() error { return e.kind }

func notFound(what string) error { return &sentinel{msg: what + " not found", kind: ErrNotFound} }
func conflict(msg string) error  { return &sentinel{msg: msg, kind: ErrConflict} }

// isDuplicateKey reports whether err is MySQL error 1062 (ER_DUP_ENTRY).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
