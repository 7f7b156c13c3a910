// Package authority is an in-memory stand-in for the remote ledger authority.
// It serves local development and end-to-end tests of the client.
package authority

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Type is the transaction type, which the client treats as its status.
type Type string

const (
	TypeSent     Type = "sent"
	TypeReceived Type = "received"
	TypePaid     Type = "paid"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSent, TypeReceived, TypePaid:
		return true
	}

	return false
}

type User struct {
	ID           int64
	Username     string
	FullName     string
	PasswordHash []byte
	Balance      decimal.Decimal
}

type Transaction struct {
	ID         int64
	Date       time.Time
	Contractor string
	Type       Type
	Amount     decimal.Decimal
	UserID     int64
}

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrForbidden          = errors.New("transaction belongs to another user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// RejectedError is a request the authority refuses on business grounds.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

func rejected(reason string) error {
	return &RejectedError{Reason: reason}
}
