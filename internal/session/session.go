package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MomchilovP/peachtree/internal/credential"
	"github.com/MomchilovP/peachtree/internal/remote"
)

var (
	ErrNoSession      = errors.New("no stored session")
	ErrSessionExpired = errors.New("stored session has expired")
)

//go:generate mockgen -source=session.go -destination=session_mock.go -package=session
type Authority interface {
	Login(ctx context.Context, username, password string) (*remote.Token, error)
	Register(ctx context.Context, req remote.RegisterRequest) (*remote.User, error)
	CurrentUser(ctx context.Context) (*remote.User, error)
}

// LedgerLoader is the part of the ledger the session loads on sign-in.
type LedgerLoader interface {
	Refresh(ctx context.Context)
}

type User struct {
	ID          int64
	Username    string
	DisplayName string
	Balance     decimal.Decimal
}

// Session tracks the signed-in user and owns the stored credential.
type Session struct {
	auth  Authority
	creds credential.Store
	now   func() time.Time

	mu   sync.RWMutex
	user *User
}

func New(auth Authority, creds credential.Store) *Session {
	return &Session{
		auth:  auth,
		creds: creds,
		now:   time.Now,
	}
}

// Restore resumes the session held by the credential store. A stored token
// that is already expired, or that the authority rejects, is cleared.
func (s *Session) Restore(ctx context.Context) error {
	token, ok := s.creds.Get()
	if !ok {
		return ErrNoSession
	}

	if tokenExpired(token, s.now()) {
		s.clearCredential()
		return ErrSessionExpired
	}

	if err := s.RefreshCurrentUser(ctx); err != nil {
		s.clearCredential()
		return fmt.Errorf("restoring session: %w", err)
	}

	return nil
}

func (s *Session) Login(ctx context.Context, username, password string) error {
	tok, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.creds.Set(tok.AccessToken); err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}

	if err := s.RefreshCurrentUser(ctx); err != nil {
		s.clearCredential()
		return fmt.Errorf("loading user: %w", err)
	}

	return nil
}

// Register creates the account and signs in with it.
func (s *Session) Register(ctx context.Context, username, password, fullName string) error {
	if _, err := s.auth.Register(ctx, remote.RegisterRequest{
		Username: username,
		Password: password,
		FullName: fullName,
	}); err != nil {
		return err
	}

	return s.Login(ctx, username, password)
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.creds.Clear(); err != nil {
		return fmt.Errorf("clearing credential: %w", err)
	}

	return nil
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user != nil
}

func (s *Session) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return User{}, false
	}

	return *s.user, true
}

func (s *Session) RefreshCurrentUser(ctx context.Context) error {
	u, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	user := userFromRemote(u)

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	return nil
}

// RefreshDisplayedBalance reloads the user, balance included. Failures are logged only.
func (s *Session) RefreshDisplayedBalance(ctx context.Context) {
	if err := s.RefreshCurrentUser(ctx); err != nil {
		slog.Error("failed to refresh user data", "error", err)
	}
}

// Bootstrap loads the user and the ledger side by side. Only a failure to
// load the user is returned; the ledger keeps its own error state.
func (s *Session) Bootstrap(ctx context.Context, ledger LedgerLoader) error {
	var g errgroup.Group

	g.Go(func() error {
		return s.RefreshCurrentUser(ctx)
	})

	g.Go(func() error {
		ledger.Refresh(ctx)
		return nil
	})

	return g.Wait()
}

func (s *Session) clearCredential() {
	if err := s.creds.Clear(); err != nil {
		slog.Error("failed to clear credential", "error", err)
	}
}

func userFromRemote(u *remote.User) User {
	balance, err := decimal.NewFromString(u.Balance)
	if err != nil {
		balance = decimal.Zero
	}

	name := u.FullName
	if name == "" {
		name = u.Username
	}

	return User{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: name,
		Balance:     balance,
	}
}

// tokenExpired reads the exp claim without verifying the signature. Tokens
// that are not JWTs are left for the authority to judge.
func tokenExpired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}

	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(now)
}
