package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/MomchilovP/peachtree/internal/remote"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=transaction
type Remote interface {
	ListTransactions(ctx context.Context) ([]remote.Transaction, error)
	CreateTransaction(ctx context.Context, req remote.CreateTransactionRequest) (*remote.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, req remote.UpdateTransactionRequest) (*remote.Transaction, error)
}

// BalanceRefresher reloads the balance shown to the user. Implementations
// log and swallow their own failures.
type BalanceRefresher interface {
	RefreshDisplayedBalance(ctx context.Context)
}

type State int

const (
	StateIdle State = iota
	StateLoading
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	}

	return "unknown"
}

// Snapshot is an immutable view of the ledger. Records is never modified
// after publication; every change builds a new slice.
type Snapshot struct {
	Loading bool
	Records []Record
	Err     string
}

func (s Snapshot) State() State {
	switch {
	case s.Loading:
		return StateLoading
	case s.Err != "":
		return StateError
	}

	return StateIdle
}

const unauthenticatedMessage = "Please log in to view transactions"

// Ledger owns the session's records and keeps them in step with the authority.
type Ledger struct {
	remote  Remote
	balance BalanceRefresher

	mu     sync.Mutex
	snap   Snapshot
	gen    uint64 // bumped by Reset
	subs   map[int]chan Snapshot
	nextID int
}

func NewLedger(r Remote, balance BalanceRefresher) *Ledger {
	return &Ledger{
		remote:  r,
		balance: balance,
		subs:    make(map[int]chan Snapshot),
	}
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snap
}

// Subscribe returns a channel that always holds the most recent snapshot,
// starting with the current one. Slow readers skip intermediate snapshots.
// The returned func unsubscribes and closes the channel.
func (l *Ledger) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = ch
	ch <- l.snap
	l.mu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()

			delete(l.subs, id)
			close(ch)
		})
	}
}

// Refresh replaces every record with the authority's list. Failures are
// recorded in the snapshot and leave the previous records in place.
func (l *Ledger) Refresh(ctx context.Context) {
	gen := l.begin(func(s *Snapshot) {
		s.Loading = true
		s.Err = ""
	})

	rts, err := l.remote.ListTransactions(ctx)
	if err != nil {
		slog.Error("failed to fetch transactions", "error", err)
		l.updateSince(gen, func(s *Snapshot) {
			s.Loading = false
			s.Err = errorMessage(err, "Failed to fetch transactions")
		})

		return
	}

	records := FromRemoteList(rts)

	l.updateSince(gen, func(s *Snapshot) {
		s.Loading = false
		s.Records = records
	})
}

// Create submits the draft and prepends the authority's record. The draft
// must already be valid. Errors are recorded and returned.
func (l *Ledger) Create(ctx context.Context, d Draft) (Record, error) {
	gen := l.begin(clearErr)

	rt, err := l.remote.CreateTransaction(ctx, ToCreateRequest(d))
	if err != nil {
		slog.Error("failed to create transaction", "error", err)
		l.failSince(gen, err, "Failed to create transaction")

		return Record{}, err
	}

	rec := FromRemote(*rt)

	applied := l.updateSince(gen, func(s *Snapshot) {
		records := make([]Record, 0, len(s.Records)+1)
		records = append(records, rec)
		s.Records = append(records, s.Records...)
	})

	if applied && l.balance != nil {
		l.balance.RefreshDisplayedBalance(ctx)
	}

	return rec, nil
}

// UpdateStatus moves the record to status once the authority confirms it.
// An unknown status is ignored.
func (l *Ledger) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return nil
	}

	gen := l.begin(clearErr)

	remoteID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		err = fmt.Errorf("invalid transaction id %q", id)
		l.failSince(gen, err, "Failed to update transaction")

		return err
	}

	rt, err := l.remote.UpdateTransaction(ctx, remoteID, remote.UpdateTransactionRequest{
		Type: StatusToRemote(status),
	})
	if err != nil {
		slog.Error("failed to update transaction", "id", id, "error", err)
		l.failSince(gen, err, "Failed to update transaction")

		return err
	}

	rec := FromRemote(*rt)

	l.updateSince(gen, func(s *Snapshot) {
		records := make([]Record, len(s.Records))
		for i, r := range s.Records {
			if r.ID == id {
				r = rec
			}

			records[i] = r
		}

		s.Records = records
	})

	return nil
}

func (l *Ledger) FindByID(id string) (Record, bool) {
	for _, r := range l.Snapshot().Records {
		if r.ID == id {
			return r, true
		}
	}

	return Record{}, false
}

// Reset discards every record, as on logout. Results of calls still in
// flight are dropped when they return.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.gen++
	l.commit(Snapshot{})
}

func clearErr(s *Snapshot) {
	s.Err = ""
}

func (l *Ledger) failSince(gen uint64, err error, fallback string) {
	l.updateSince(gen, func(s *Snapshot) {
		s.Err = errorMessage(err, fallback)
	})
}

// begin applies fn and returns the generation later writes must match.
func (l *Ledger) begin(fn func(*Snapshot)) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.snap
	fn(&next)
	l.commit(next)

	return l.gen
}

// updateSince applies fn unless the ledger was reset after gen was taken.
func (l *Ledger) updateSince(gen uint64, fn func(*Snapshot)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen != gen {
		return false
	}

	next := l.snap
	fn(&next)
	l.commit(next)

	return true
}

// commit stores s and publishes it. l.mu must be held.
func (l *Ledger) commit(s Snapshot) {
	l.snap = s

	for _, ch := range l.subs {
		publish(ch, s)
	}
}

// publish replaces whatever snapshot is pending in ch with s.
func publish(ch chan Snapshot, s Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- s:
	default:
	}
}

func errorMessage(err error, fallback string) string {
	if remote.IsUnauthenticated(err) {
		return unauthenticatedMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return fallback
}
