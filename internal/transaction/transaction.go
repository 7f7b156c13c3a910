package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the workflow state of a record.
type Status string

const (
	StatusSent     Status = "sent"
	StatusPaid     Status = "paid"
	StatusReceived Status = "received"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusSent, StatusPaid, StatusReceived}

func (s Status) Valid() bool {
	switch s {
	case StatusSent, StatusPaid, StatusReceived:
		return true
	}

	return false
}

const (
	// CurrentAccount is the origin account of every record held by this client.
	CurrentAccount = "Your Account"
	// KindTransaction is the display label attached to every record.
	KindTransaction = "transaction"
)

// Record is a ledger entry as the client presents it.
type Record struct {
	ID          string
	Date        time.Time // calendar date at UTC midnight
	Contractor  string
	Amount      decimal.Decimal
	FromAccount string
	ToAccount   string
	Status      Status
	Kind        string
}

// Draft is an unsaved proposal for a new record.
type Draft struct {
	ToAccount string
	Amount    decimal.Decimal
	Type      Status
}

// NewDraft returns an empty draft with the default type.
func NewDraft() Draft {
	return Draft{Type: StatusSent}
}

// ValidationError describes a draft the caller must fix before submitting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the draft before it is handed to Ledger.Create, which does not validate.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.ToAccount) == "" {
		return &ValidationError{Field: "to account", Message: "cannot be empty"}
	}

	if !d.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	if d.Type != "" && !d.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown transaction type %q", d.Type)}
	}

	return nil
}
