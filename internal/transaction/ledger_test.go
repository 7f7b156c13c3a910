package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MomchilovP/peachtree/internal/remote"
	"github.com/MomchilovP/peachtree/internal/transaction"
)

func remoteTx(id int64, contractor string, typ remote.Type, amount string) remote.Transaction {
	return remote.Transaction{
		ID:         id,
		Date:       remote.Timestamp{Time: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		Contractor: contractor,
		Type:       typ,
		Amount:     amount,
		UserID:     1,
	}
}

func newLedger(t *testing.T) (*transaction.Ledger, *transaction.MockRemote, *transaction.MockBalanceRefresher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	r := transaction.NewMockRemote(ctrl)
	b := transaction.NewMockBalanceRefresher(ctrl)

	return transaction.NewLedger(r, b), r, b
}

// seed loads the given records through a successful refresh.
func seed(t *testing.T, l *transaction.Ledger, r *transaction.MockRemote, rts ...remote.Transaction) {
	t.Helper()

	r.EXPECT().ListTransactions(gomock.Any()).Return(rts, nil)
	l.Refresh(context.Background())
	require.Len(t, l.Snapshot().Records, len(rts))
}

func TestLedger_Refresh(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *transaction.MockRemote)
		wantIDs   []string
		wantErr   string
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *transaction.MockRemote) {
				m.EXPECT().ListTransactions(gomock.Any()).Return([]remote.Transaction{
					remoteTx(9, "zed", remote.TypeSent, "1.00"),
					remoteTx(2, "amy", remote.TypePaid, "2.00"),
					remoteTx(5, "kim", remote.TypeReceived, "3.00"),
				}, nil)
			},
			wantIDs: []string{"9", "2", "5"},
		},
		{
			name: "Empty",
			setupMock: func(m *transaction.MockRemote) {
				m.EXPECT().ListTransactions(gomock.Any()).Return([]remote.Transaction{}, nil)
			},
			wantIDs: []string{},
		},
		{
			name: "RemoteError",
			setupMock: func(m *transaction.MockRemote) {
				m.EXPECT().ListTransactions(gomock.Any()).Return(nil, &remote.RequestError{StatusCode: 500, Message: "HTTP 500: Internal Server Error"})
			},
			wantErr: "HTTP 500: Internal Server Error",
		},
		{
			name: "Unauthenticated",
			setupMock: func(m *transaction.MockRemote) {
				m.EXPECT().ListTransactions(gomock.Any()).Return(nil, &remote.RequestError{
					StatusCode: 401,
					Message:    "Could not validate credentials",
					Err:        remote.ErrUnauthenticated,
				})
			},
			wantErr: "Please log in to view transactions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, r, _ := newLedger(t)
			tt.setupMock(r)

			l.Refresh(context.Background())

			snap := l.Snapshot()
			assert.False(t, snap.Loading)

			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, snap.Err)
				assert.Equal(t, transaction.StateError, snap.State())

				return
			}

			assert.Empty(t, snap.Err)
			assert.Equal(t, transaction.StateIdle, snap.State())
			assert.Equal(t, tt.wantIDs, ids(snap.Records))
		})
	}
}

func TestLedger_Refresh_ReplacesEverything(t *testing.T) {
	l, r, _ := newLedger(t)
	seed(t, l, r, remoteTx(1, "a", remote.TypeSent, "1.00"), remoteTx(2, "b", remote.TypeSent, "1.00"))

	r.EXPECT().ListTransactions(gomock.Any()).Return([]remote.Transaction{remoteTx(3, "c", remote.TypePaid, "4.00")}, nil)
	l.Refresh(context.Background())

	assert.Equal(t, []string{"3"}, ids(l.Snapshot().Records))
}

func TestLedger_Refresh_FailureKeepsRecords(t *testing.T) {
	l, r, _ := newLedger(t)
	seed(t, l, r, remoteTx(1, "a", remote.TypeSent, "1.00"), remoteTx(2, "b", remote.TypeSent, "1.00"))

	r.EXPECT().ListTransactions(gomock.Any()).Return(nil, errors.New("connection refused"))
	l.Refresh(context.Background())

	snap := l.Snapshot()
	assert.Equal(t, []string{"1", "2"}, ids(snap.Records))
	assert.Equal(t, "connection refused", snap.Err)
	assert.False(t, snap.Loading)
}

func TestLedger_Refresh_ClearsPreviousError(t *testing.T) {
	l, r, _ := newLedger(t)

	r.EXPECT().ListTransactions(gomock.Any()).Return(nil, errors.New("boom"))
	l.Refresh(context.Background())
	require.Equal(t, "boom", l.Snapshot().Err)

	seed(t, l, r, remoteTx(1, "a", remote.TypeSent, "1.00"))
	assert.Empty(t, l.Snapshot().Err)
}

func TestLedger_Refresh_ReportsLoading(t *testing.T) {
	l, r, _ := newLedger(t)

	var during transaction.Snapshot

	r.EXPECT().ListTransactions(gomock.Any()).DoAndReturn(func(context.Context) ([]remote.Transaction, error) {
		during = l.Snapshot()
		return nil, nil
	})

	l.Refresh(context.Background())

	assert.True(t, during.Loading)
	assert.Equal(t, transaction.StateLoading, during.State())
	assert.False(t, l.Snapshot().Loading)
}

func TestLedger_Create(t *testing.T) {
	l, r, b := newLedger(t)
	seed(t, l, r, remoteTx(3, "bob", remote.TypePaid, "10.00"))

	gomock.InOrder(
		r.EXPECT().
			CreateTransaction(gomock.Any(), remote.CreateTransactionRequest{
				Contractor: "alice",
				Amount:     "42.50",
				Type:       remote.TypeSent,
			}).
			Return(new(remoteTx(7, "alice", remote.TypeSent, "42.50")), nil),
		b.EXPECT().RefreshDisplayedBalance(gomock.Any()),
	)

	rec, err := l.Create(context.Background(), transaction.Draft{
		ToAccount: "alice",
		Amount:    decimal.NewFromFloat(42.5),
		Type:      transaction.StatusSent,
	})
	require.NoError(t, err)
	assert.Equal(t, "7", rec.ID)

	snap := l.Snapshot()
	require.Len(t, snap.Records, 2)

	first := snap.Records[0]
	assert.Equal(t, "7", first.ID)
	assert.Equal(t, transaction.StatusSent, first.Status)
	assert.True(t, decimal.NewFromFloat(42.5).Equal(first.Amount))
	assert.Equal(t, "3", snap.Records[1].ID)
}

func TestLedger_Create_Failure(t *testing.T) {
	l, r, b := newLedger(t)
	seed(t, l, r, remoteTx(3, "bob", remote.TypePaid, "10.00"))

	before := l.Snapshot().Records

	r.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		Return(nil, &remote.RequestError{StatusCode: 400, Message: "Insufficient funds"})
	b.EXPECT().RefreshDisplayedBalance(gomock.Any()).Times(0)

	_, err := l.Create(context.Background(), transaction.Draft{
		ToAccount: "alice",
		Amount:    decimal.NewFromInt(5000),
		Type:      transaction.StatusSent,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient funds")

	var reqErr *remote.RequestError
	assert.True(t, errors.As(err, &reqErr))

	snap := l.Snapshot()
	assert.Equal(t, before, snap.Records)
	assert.Equal(t, "Insufficient funds", snap.Err)
}

func TestLedger_UpdateStatus(t *testing.T) {
	l, r, b := newLedger(t)
	seed(t, l, r,
		remoteTx(5, "carol", remote.TypeReceived, "1.00"),
		remoteTx(7, "alice", remote.TypeSent, "42.50"),
		remoteTx(9, "dave", remote.TypeSent, "3.00"),
	)

	before := l.Snapshot().Records

	r.EXPECT().
		UpdateTransaction(gomock.Any(), int64(7), remote.UpdateTransactionRequest{Type: remote.TypePaid}).
		Return(new(remoteTx(7, "alice", remote.TypePaid, "42.50")), nil)
	b.EXPECT().RefreshDisplayedBalance(gomock.Any()).Times(0)

	require.NoError(t, l.UpdateStatus(context.Background(), "7", transaction.StatusPaid))

	after := l.Snapshot().Records
	require.Len(t, after, 3)
	assert.Equal(t, []string{"5", "7", "9"}, ids(after))

	assert.Equal(t, transaction.StatusPaid, after[1].Status)

	want := before[1]
	want.Status = transaction.StatusPaid
	assert.Equal(t, want, after[1])

	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, transaction.StatusSent, before[1].Status, "published snapshots are not mutated")
}

func TestLedger_UpdateStatus_InvalidStatusIsNoop(t *testing.T) {
	l, r, _ := newLedger(t)
	seed(t, l, r, remoteTx(7, "alice", remote.TypeSent, "42.50"))

	before := l.Snapshot()

	r.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := l.UpdateStatus(context.Background(), "7", transaction.Status("bogus"))
	assert.NoError(t, err)
	assert.Equal(t, before, l.Snapshot())
}

func TestLedger_UpdateStatus_Failure(t *testing.T) {
	l, r, _ := newLedger(t)
	seed(t, l, r, remoteTx(7, "alice", remote.TypeSent, "42.50"))

	r.EXPECT().
		UpdateTransaction(gomock.Any(), int64(7), gomock.Any()).
		Return(nil, &remote.RequestError{StatusCode: 404, Message: "Transaction not found"})

	err := l.UpdateStatus(context.Background(), "7", transaction.StatusReceived)
	require.Error(t, err)
	assert.Equal(t, "Transaction not found", err.Error())

	rec, ok := l.FindByID("7")
	require.True(t, ok)
	assert.Equal(t, transaction.StatusSent, rec.Status)
	assert.Equal(t, "Transaction not found", l.Snapshot().Err)
}

func TestLedger_UpdateStatus_MalformedID(t *testing.T) {
	l, r, _ := newLedger(t)

	r.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := l.UpdateStatus(context.Background(), "abc", transaction.StatusPaid)
	require.Error(t, err)
	assert.NotEmpty(t, l.Snapshot().Err)
}

func TestLedger_FindByID(t *testing.T) {
	l, r, _ := newLedger(t)
	seed(t, l, r, remoteTx(1, "a", remote.TypeSent, "1.00"), remoteTx(2, "b", remote.TypePaid, "2.00"))

	rec, ok := l.FindByID("2")
	require.True(t, ok)
	assert.Equal(t, "b", rec.Contractor)

	_, ok = l.FindByID("3")
	assert.False(t, ok)
}

func TestLedger_Reset(t *testing.T) {
	l, r, _ := newLedger(t)
	seed(t, l, r, remoteTx(1, "a", remote.TypeSent, "1.00"))

	l.Reset()

	assert.Empty(t, l.Snapshot().Records)
	assert.Equal(t, transaction.StateIdle, l.Snapshot().State())
}

func TestLedger_Reset_DropsInFlightRefresh(t *testing.T) {
	l, r, _ := newLedger(t)

	started := make(chan struct{})
	release := make(chan struct{})

	r.EXPECT().ListTransactions(gomock.Any()).DoAndReturn(func(context.Context) ([]remote.Transaction, error) {
		close(started)
		<-release

		return []remote.Transaction{remoteTx(1, "previous-user", remote.TypeSent, "1.00")}, nil
	})

	done := make(chan struct{})

	go func() {
		defer close(done)
		l.Refresh(context.Background())
	}()

	<-started
	l.Reset()
	close(release)
	<-done

	assert.Empty(t, l.Snapshot().Records)
	assert.Equal(t, transaction.StateIdle, l.Snapshot().State())

	// The next session's refresh lands normally.
	r.EXPECT().ListTransactions(gomock.Any()).Return([]remote.Transaction{
		remoteTx(2, "next-user", remote.TypeSent, "2.00"),
	}, nil)
	l.Refresh(context.Background())

	require.Len(t, l.Snapshot().Records, 1)
	assert.Equal(t, "2", l.Snapshot().Records[0].ID)
}

func TestLedger_Reset_DropsInFlightCreate(t *testing.T) {
	l, r, b := newLedger(t)

	started := make(chan struct{})
	release := make(chan struct{})

	r.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, remote.CreateTransactionRequest) (*remote.Transaction, error) {
			close(started)
			<-release

			return new(remoteTx(7, "bob", remote.TypeSent, "42.50")), nil
		})
	b.EXPECT().RefreshDisplayedBalance(gomock.Any()).Times(0)

	done := make(chan struct{})

	go func() {
		defer close(done)

		_, err := l.Create(context.Background(), transaction.Draft{
			ToAccount: "bob",
			Amount:    decimal.RequireFromString("42.50"),
			Type:      transaction.StatusSent,
		})
		assert.NoError(t, err)
	}()

	<-started
	l.Reset()
	close(release)
	<-done

	assert.Empty(t, l.Snapshot().Records)
}

func TestLedger_Subscribe(t *testing.T) {
	l, r, _ := newLedger(t)

	updates, unsubscribe := l.Subscribe()

	initial := <-updates
	assert.Empty(t, initial.Records)

	r.EXPECT().ListTransactions(gomock.Any()).Return([]remote.Transaction{remoteTx(1, "a", remote.TypeSent, "1.00")}, nil)
	l.Refresh(context.Background())

	// Intermediate loading snapshots are dropped for a reader that falls behind.
	latest := <-updates
	assert.False(t, latest.Loading)
	assert.Equal(t, []string{"1"}, ids(latest.Records))

	select {
	case s := <-updates:
		t.Fatalf("unexpected extra snapshot: %+v", s)
	default:
	}

	unsubscribe()
	unsubscribe()

	_, open := <-updates
	assert.False(t, open)
}
