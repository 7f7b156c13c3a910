package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MomchilovP/peachtree/cmd/tui/internal/view"
	"github.com/MomchilovP/peachtree/internal/config"
	"github.com/MomchilovP/peachtree/internal/credential"
	"github.com/MomchilovP/peachtree/internal/remote"
	"github.com/MomchilovP/peachtree/internal/session"
	"github.com/MomchilovP/peachtree/internal/transaction"
)

type model struct {
	appName string
	session *session.Session
	ledger  *transaction.Ledger

	snapshots   <-chan transaction.Snapshot
	unsubscribe func()

	currentView View
	restoring   bool
	timeout     time.Duration

	loginView   view.LoginModel
	ledgerView  view.LedgerModel
	formView    view.FormModel
	detailsView view.DetailsModel
}

type View int

const (
	ViewLogin   View = 0
	ViewLedger  View = 1
	ViewForm    View = 2
	ViewDetails View = 3
)

func initialModel(cfg *config.Config, creds credential.Store) model {
	client := remote.NewClient(cfg.APIURL(), creds, remote.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}))

	sess := session.New(client, creds)
	ledger := transaction.NewLedger(client, sess)
	snapshots, unsubscribe := ledger.Subscribe()

	return model{
		appName:     cfg.App.Name,
		session:     sess,
		ledger:      ledger,
		snapshots:   snapshots,
		unsubscribe: unsubscribe,
		currentView: ViewLogin,
		restoring:   true,
		timeout:     cfg.API.Timeout,
		loginView:   view.NewLoginModel(sess, "", cfg.API.Timeout),
		ledgerView:  view.NewLedgerModel(ledger, cfg.API.Timeout),
	}
}

type restoredMsg struct {
	err error
}

func (m model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.RequestCtx(m.timeout)
		defer cancel()

		return restoredMsg{err: m.session.Restore(ctx)}
	}
}

type bootstrappedMsg struct {
	err error
}

func (m model) bootstrapCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.RequestCtx(m.timeout)
		defer cancel()

		return bootstrappedMsg{err: m.session.Bootstrap(ctx, m.ledger)}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.restoreCmd(), view.WaitForSnapshot(m.snapshots))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.currentView != ViewLedger {
			newLedger, _ := m.ledgerView.Update(msg)
			m.ledgerView = newLedger.(view.LedgerModel)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.currentView == ViewLedger && !m.ledgerView.Searching() {
				return m, tea.Quit
			}
		}

	case restoredMsg:
		m.restoring = false

		if msg.err != nil {
			if !errors.Is(msg.err, session.ErrNoSession) {
				slog.Info("stored session not restored", "error", msg.err)
			}

			if errors.Is(msg.err, session.ErrSessionExpired) {
				m.loginView = view.NewLoginModel(m.session, "Your session has expired. Please log in again.", m.timeout)
			}

			return m, m.loginView.Init()
		}

		m.currentView = ViewLedger

		return m, m.bootstrapCmd()

	case view.LoggedInMsg:
		m.currentView = ViewLedger
		return m, m.bootstrapCmd()

	case bootstrappedMsg:
		if msg.err != nil {
			slog.Error("failed to load user", "error", msg.err)
		}

		return m, nil

	case view.SnapshotMsg:
		newLedger, _ := m.ledgerView.Update(msg)
		m.ledgerView = newLedger.(view.LedgerModel)

		if m.currentView == ViewDetails {
			newDetails, _ := m.detailsView.Update(msg)
			m.detailsView = newDetails.(view.DetailsModel)
		}

		return m, view.WaitForSnapshot(m.snapshots)

	case view.OpenFormMsg:
		m.currentView = ViewForm
		m.formView = view.NewFormModel(m.ledger, m.timeout)

		return m, m.formView.Init()

	case view.OpenDetailsMsg:
		m.currentView = ViewDetails
		m.detailsView = view.NewDetailsModel(m.ledger, msg.ID, m.timeout)

		return m, m.detailsView.Init()

	case view.BackMsg:
		m.currentView = ViewLedger
		return m, nil

	case view.LogoutMsg:
		if err := m.session.Logout(); err != nil {
			slog.Error("failed to log out", "error", err)
		}

		m.ledger.Reset()
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.session, "", m.timeout)

		return m, m.loginView.Init()
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		if m.restoring {
			return m, nil
		}

		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewForm:
		var newModel tea.Model
		newModel, cmd = m.formView.Update(msg)
		m.formView = newModel.(view.FormModel)
	case ViewDetails:
		var newModel tea.Model
		newModel, cmd = m.detailsView.Update(msg)
		m.detailsView = newModel.(view.DetailsModel)
	}

	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

func (m model) header() string {
	title := titleStyle.Render(m.appName)

	u, ok := m.session.CurrentUser()
	if !ok {
		return title
	}

	return fmt.Sprintf("%s  %s | Balance: %s", title, u.DisplayName, view.FormatAmount(u.Balance))
}

func (m model) View() string {
	if m.restoring {
		return lipgloss.NewStyle().Padding(2).Render("Restoring session...")
	}

	var body, help string

	switch m.currentView {
	case ViewLogin:
		body, help = m.loginView.View(), m.loginView.ShortHelp()
	case ViewLedger:
		body, help = m.ledgerView.View(), m.ledgerView.ShortHelp()
	case ViewForm:
		body, help = m.formView.View(), m.formView.ShortHelp()
	case ViewDetails:
		body, help = m.detailsView.View(), m.detailsView.ShortHelp()
	default:
		return "Unknown View"
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(m.header()),
			body,
			"",
			helpStyle.Render(help),
		),
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(cfg.App.LogFile, "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	creds, err := credential.OpenKeyring(credential.Config{
		ServiceName: cfg.App.Name,
		Backend:     cfg.Credentials.Backend,
		Dir:         cfg.Credentials.Dir,
		Passphrase:  cfg.Credentials.Passphrase,
	})
	if err != nil {
		slog.Error("failed to open credential store", "error", err)
		os.Exit(1)
	}

	m := initialModel(cfg, creds)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
