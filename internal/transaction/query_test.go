package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MomchilovP/peachtree/internal/transaction"
)

func queryFixture() []transaction.Record {
	return []transaction.Record{
		{ID: "1", Contractor: "Backbase", Amount: decimal.RequireFromString("5000"), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Contractor: "alice", Amount: decimal.RequireFromString("12.5"), Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Contractor: "Carol", Amount: decimal.RequireFromString("99.99"), Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "4", Contractor: "bob", Amount: decimal.RequireFromString("12.5"), Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func ids(records []transaction.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}

	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "Empty", term: "", want: []string{"1", "2", "3", "4"}},
		{name: "ContractorCaseInsensitive", term: "CAROL", want: []string{"3"}},
		{name: "Amount", term: "12.5", want: []string{"2", "4"}},
		{name: "Date", term: "2024-02", want: []string{"3"}},
		{name: "NoMatch", term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transaction.Search(queryFixture(), tt.term)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestSortRecords(t *testing.T) {
	tests := []struct {
		name  string
		field transaction.SortField
		dir   transaction.SortDirection
		want  []string
	}{
		{name: "DateDesc", field: transaction.SortByDate, dir: transaction.Descending, want: []string{"2", "4", "3", "1"}},
		{name: "DateAsc", field: transaction.SortByDate, dir: transaction.Ascending, want: []string{"1", "3", "2", "4"}},
		{name: "ContractorAsc", field: transaction.SortByContractor, dir: transaction.Ascending, want: []string{"2", "1", "4", "3"}},
		{name: "AmountDesc", field: transaction.SortByAmount, dir: transaction.Descending, want: []string{"1", "3", "2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(transaction.SortRecords(queryFixture(), tt.field, tt.dir)))
		})
	}
}

func TestSortRecords_DoesNotMutateInput(t *testing.T) {
	in := queryFixture()
	_ = transaction.SortRecords(in, transaction.SortByAmount, transaction.Ascending)

	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(in))
}
