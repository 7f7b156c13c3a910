package view

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MomchilovP/peachtree/internal/remote"
	"github.com/MomchilovP/peachtree/internal/transaction"
)

func seededLedger(t *testing.T) *transaction.Ledger {
	t.Helper()

	ctrl := gomock.NewController(t)
	r := transaction.NewMockRemote(ctrl)

	day := func(d int) remote.Timestamp {
		return remote.Timestamp{Time: time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)}
	}

	r.EXPECT().ListTransactions(gomock.Any()).Return([]remote.Transaction{
		{ID: 1, Date: day(1), Contractor: "carol", Type: remote.TypeSent, Amount: "10.00"},
		{ID: 2, Date: day(3), Contractor: "alice", Type: remote.TypePaid, Amount: "250.00"},
		{ID: 3, Date: day(2), Contractor: "bob", Type: remote.TypeReceived, Amount: "5.50"},
	}, nil)

	l := transaction.NewLedger(r, nil)
	l.Refresh(context.Background())
	require.Len(t, l.Snapshot().Records, 3)

	return l
}

func visibleIDs(m LedgerModel) []string {
	ids := make([]string, len(m.visible))
	for i, r := range m.visible {
		ids[i] = r.ID
	}

	return ids
}

func press(t *testing.T, m LedgerModel, keys ...string) LedgerModel {
	t.Helper()

	for _, k := range keys {
		var msg tea.KeyMsg

		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}

		next, _ := m.Update(msg)
		m = next.(LedgerModel)
	}

	return m
}

func TestLedgerModel_Sorting(t *testing.T) {
	m := NewLedgerModel(seededLedger(t), time.Second)

	assert.Equal(t, []string{"2", "3", "1"}, visibleIDs(m), "newest first by default")

	m = press(t, m, "s")
	assert.Equal(t, []string{"1", "3", "2"}, visibleIDs(m), "contractor descending")

	m = press(t, m, "o")
	assert.Equal(t, []string{"2", "3", "1"}, visibleIDs(m), "contractor ascending")

	m = press(t, m, "s")
	assert.Equal(t, []string{"3", "1", "2"}, visibleIDs(m), "amount ascending")
}

func TestLedgerModel_Search(t *testing.T) {
	m := NewLedgerModel(seededLedger(t), time.Second)

	m = press(t, m, "/")
	require.True(t, m.Searching())

	m = press(t, m, "b", "o")
	assert.Equal(t, []string{"3"}, visibleIDs(m))

	m = press(t, m, "enter")
	assert.False(t, m.Searching())
	assert.Equal(t, []string{"3"}, visibleIDs(m), "term stays applied")
}

func TestLedgerModel_SnapshotError(t *testing.T) {
	m := NewLedgerModel(seededLedger(t), time.Second)

	next, _ := m.Update(SnapshotMsg{Snapshot: transaction.Snapshot{
		Records: m.snap.Records,
		Err:     "Please log in to view transactions",
	}})
	m = next.(LedgerModel)

	assert.Contains(t, m.View(), "Please log in to view transactions")
	assert.Len(t, m.visible, 3)
}

func TestLedgerModel_OpenDetails(t *testing.T) {
	m := NewLedgerModel(seededLedger(t), time.Second)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, OpenDetailsMsg{ID: "2"}, cmd())
}
