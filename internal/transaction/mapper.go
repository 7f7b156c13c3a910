package transaction

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MomchilovP/peachtree/internal/remote"
)

// FromRemote maps an authority record to its client shape. Malformed input
// yields zero values rather than an error.
func FromRemote(rt remote.Transaction) Record {
	amount, err := decimal.NewFromString(rt.Amount)
	if err != nil {
		amount = decimal.Zero
	}

	return Record{
		ID:          strconv.FormatInt(rt.ID, 10),
		Date:        calendarDate(rt.Date.Time),
		Contractor:  rt.Contractor,
		Amount:      amount,
		FromAccount: CurrentAccount,
		ToAccount:   rt.Contractor,
		Status:      Status(rt.Type),
		Kind:        KindTransaction,
	}
}

func FromRemoteList(rts []remote.Transaction) []Record {
	records := make([]Record, len(rts))
	for i, rt := range rts {
		records[i] = FromRemote(rt)
	}

	return records
}

// ToCreateRequest maps a draft to the authority's create payload. The amount
// is rounded half away from zero to exactly two decimals.
func ToCreateRequest(d Draft) remote.CreateTransactionRequest {
	return remote.CreateTransactionRequest{
		Contractor: d.ToAccount,
		Amount:     FormatAmount(d.Amount),
		Type:       remote.Type(d.Type),
	}
}

// StatusToRemote maps a client status to the authority's type vocabulary.
func StatusToRemote(s Status) remote.Type {
	return remote.Type(s)
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// calendarDate converts to UTC and drops the time of day. Every date shown
// by the client goes through this one rule.
func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
