package transaction

import (
	"slices"
	"strings"
	"time"
)

type SortField string

const (
	SortByDate       SortField = "date"
	SortByContractor SortField = "contractor"
	SortByAmount     SortField = "amount"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Search keeps records whose contractor contains term (case-insensitive), or
// whose amount or YYYY-MM-DD date contains it verbatim. An empty term keeps everything.
func Search(records []Record, term string) []Record {
	term = strings.TrimSpace(term)
	if term == "" {
		return slices.Clone(records)
	}

	lower := strings.ToLower(term)

	var out []Record

	for _, r := range records {
		switch {
		case strings.Contains(strings.ToLower(r.Contractor), lower),
			strings.Contains(r.Amount.String(), term),
			strings.Contains(r.Date.Format(time.DateOnly), term):
			out = append(out, r)
		}
	}

	return out
}

// SortRecords returns a sorted copy. Ties keep their ledger order.
func SortRecords(records []Record, field SortField, dir SortDirection) []Record {
	out := slices.Clone(records)

	slices.SortStableFunc(out, func(a, b Record) int {
		var c int

		switch field {
		case SortByContractor:
			c = strings.Compare(strings.ToLower(a.Contractor), strings.ToLower(b.Contractor))
		case SortByAmount:
			c = a.Amount.Cmp(b.Amount)
		default:
			c = a.Date.Compare(b.Date)
		}

		if dir == Descending {
			return -c
		}

		return c
	})

	return out
}
