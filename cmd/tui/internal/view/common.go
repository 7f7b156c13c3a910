package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MomchilovP/peachtree/internal/transaction"
)

// DefaultRequestTimeout bounds calls when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

type CommonModel struct {
	Width   int
	Height  int
	Timeout time.Duration // per call to the authority
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoggedInMsg is sent once the user holds a valid session.
type LoggedInMsg struct{}

type LogoutMsg struct{}

func Logout() tea.Msg {
	return LogoutMsg{}
}

type OpenFormMsg struct{}

type OpenDetailsMsg struct {
	ID string
}

// SnapshotMsg carries the latest ledger snapshot to the screens.
type SnapshotMsg struct {
	Snapshot transaction.Snapshot
}

// WaitForSnapshot blocks on ch and delivers its next snapshot. It must be
// re-issued after each SnapshotMsg. A closed channel ends the subscription.
func WaitForSnapshot(ch <-chan transaction.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}

		return SnapshotMsg{Snapshot: snap}
	}
}

// RequestCtx returns a context bounding a single call to the authority.
func RequestCtx(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return context.WithTimeout(context.Background(), timeout)
}
