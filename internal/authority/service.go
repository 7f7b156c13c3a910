package authority

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	startingBalance decimal.Decimal
	now             func() time.Time

	mu         sync.Mutex
	users      map[int64]*User
	byUsername map[string]int64
	txs        []*Transaction
	nextUserID int64
	nextTxID   int64
}

func NewService(startingBalance decimal.Decimal) *Service {
	return &Service{
		startingBalance: startingBalance,
		now:             time.Now,
		users:           make(map[int64]*User),
		byUsername:      make(map[string]int64),
	}
}

type RegisterParams struct {
	Username string
	Password string
	FullName string
}

type CreateParams struct {
	Contractor string
	Amount     decimal.Decimal
	Type       Type
}

func (s *Service) Register(_ context.Context, p RegisterParams) (*User, error) {
	if err := validateUsername(p.Username); err != nil {
		return nil, err
	}

	if len(p.Password) < 6 {
		return nil, rejected("Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[p.Username]; taken {
		return nil, rejected("Username already registered")
	}

	s.nextUserID++
	u := &User{
		ID:           s.nextUserID,
		Username:     p.Username,
		FullName:     p.FullName,
		PasswordHash: hash,
		Balance:      s.startingBalance,
	}
	s.users[u.ID] = u
	s.byUsername[u.Username] = u.ID

	return new(*u), nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.UserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) UserByUsername(_ context.Context, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrUserNotFound
	}

	return new(*s.users[id]), nil
}

// CreateTransaction moves the amount from the sender to the contractor, who
// must be another registered user, and records it for the sender.
func (s *Service) CreateTransaction(_ context.Context, userID int64, p CreateParams) (*Transaction, error) {
	if !p.Amount.IsPositive() {
		return nil, rejected("Amount must be positive")
	}

	if p.Type == "" {
		p.Type = TypeSent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, ok := s.users[userID]
	if !ok {
		return nil, rejected("Sender user not found")
	}

	if sender.Balance.LessThan(p.Amount) {
		return nil, rejected("Insufficient funds")
	}

	recipientID, ok := s.byUsername[p.Contractor]
	if !ok {
		return nil, rejected(fmt.Sprintf("Recipient user '%s' not found", p.Contractor))
	}

	if recipientID == sender.ID {
		return nil, rejected("Cannot send money to yourself")
	}

	recipient := s.users[recipientID]
	sender.Balance = sender.Balance.Sub(p.Amount)
	recipient.Balance = recipient.Balance.Add(p.Amount)

	s.nextTxID++
	tx := &Transaction{
		ID:         s.nextTxID,
		Date:       s.now().UTC(),
		Contractor: p.Contractor,
		Type:       p.Type,
		Amount:     p.Amount,
		UserID:     sender.ID,
	}
	s.txs = append(s.txs, tx)

	return new(*tx), nil
}

func (s *Service) ListTransactions(_ context.Context, userID int64) ([]*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Transaction

	for _, tx := range s.txs {
		if tx.UserID == userID {
			out = append(out, new(*tx))
		}
	}

	return out, nil
}

func (s *Service) GetTransaction(_ context.Context, userID, id int64) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}

	return new(*tx), nil
}

// UpdateType changes the type of a transaction. Balances are not touched.
func (s *Service) UpdateType(_ context.Context, userID, id int64, t Type) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}

	tx.Type = t

	return new(*tx), nil
}

func (s *Service) owned(userID, id int64) (*Transaction, error) {
	idx := slices.IndexFunc(s.txs, func(tx *Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	if s.txs[idx].UserID != userID {
		return nil, ErrForbidden
	}

	return s.txs[idx], nil
}

func validateUsername(username string) error {
	if n := len(username); n < 3 || n > 50 {
		return rejected("Username must be 3-50 characters")
	}

	valid := strings.IndexFunc(username, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-'
	}) < 0
	if !valid {
		return rejected("Username must contain only letters, numbers, underscores, and hyphens")
	}

	return nil
}
