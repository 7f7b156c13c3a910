package remote

import (
	"encoding/json"
	"strings"
	"time"
)

// Type is the authority's transaction type. It doubles as the record status.
type Type string

const (
	TypeSent     Type = "sent"
	TypePaid     Type = "paid"
	TypeReceived Type = "received"
)

// Transaction is a ledger record as the authority represents it.
type Transaction struct {
	ID         int64     `json:"id"`
	Date       Timestamp `json:"date"`
	Contractor string    `json:"contractor"`
	Type       Type      `json:"type"`
	Amount     string    `json:"amount"` // decimal encoded as text
	UserID     int64     `json:"user_id"`
}

type CreateTransactionRequest struct {
	Contractor string `json:"contractor"`
	Amount     string `json:"amount"`
	Type       Type   `json:"type,omitempty"`
}

type UpdateTransactionRequest struct {
	Type Type `json:"type"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Balance  string `json:"balance"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// timestampLayouts covers RFC 3339 as well as the naive forms some authorities emit.
// Naive timestamps are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Timestamp decodes leniently: an unparseable value leaves the zero time
// instead of failing the whole response.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil
	}

	t.Time = ParseTimestamp(s)

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// ParseTimestamp returns the zero time when s matches none of the known layouts.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}

	return time.Time{}
}
