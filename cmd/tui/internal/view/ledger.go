package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MomchilovP/peachtree/internal/transaction"
)

var sortFields = []transaction.SortField{
	transaction.SortByDate,
	transaction.SortByContractor,
	transaction.SortByAmount,
}

type LedgerModel struct {
	CommonModel
	ledger *transaction.Ledger

	snap    transaction.Snapshot
	visible []transaction.Record

	table  table.Model
	search textinput.Model

	sortIdx int
	sortDir transaction.SortDirection
}

func NewLedgerModel(l *transaction.Ledger, timeout time.Duration) LedgerModel {
	columns := []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Contractor", Width: 30},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "contractor, amount or YYYY-MM-DD"
	ti.Prompt = "Search: "
	ti.CharLimit = 64

	m := LedgerModel{
		CommonModel: CommonModel{Timeout: timeout},
		ledger:      l,
		snap:        l.Snapshot(),
		table:       t,
		search:      ti,
		sortDir:     transaction.Descending,
	}
	m.refreshTable()

	return m
}

func (m LedgerModel) Title() string { return "Transactions" }

func (m LedgerModel) ShortHelp() string {
	if m.search.Focused() {
		return "Enter/Esc: done searching"
	}

	return "n: new | Enter: details | /: search | s: sort field | o: order | r: refresh | l: log out | q: quit"
}

func (m LedgerModel) Init() tea.Cmd {
	return nil
}

// Searching reports whether keystrokes belong to the search box.
func (m LedgerModel) Searching() bool {
	return m.search.Focused()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = msg.Snapshot
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "/":
			m.table.Blur()
			return m, m.search.Focus()
		case "r":
			return m, m.refreshCmd()
		case "n":
			return m, func() tea.Msg { return OpenFormMsg{} }
		case "enter":
			rec, ok := m.selected()
			if !ok {
				return m, nil
			}

			return m, func() tea.Msg { return OpenDetailsMsg{ID: rec.ID} }
		case "s":
			m.sortIdx = (m.sortIdx + 1) % len(sortFields)
			m.refreshTable()

			return m, nil
		case "o":
			if m.sortDir == transaction.Descending {
				m.sortDir = transaction.Ascending
			} else {
				m.sortDir = transaction.Descending
			}

			m.refreshTable()

			return m, nil
		case "l":
			return m, Logout
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.search.Blur()
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m LedgerModel) refreshCmd() tea.Cmd {
	l, timeout := m.ledger, m.Timeout

	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		l.Refresh(ctx)

		return nil
	}
}

func (m LedgerModel) selected() (transaction.Record, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return transaction.Record{}, false
	}

	return m.visible[idx], true
}

func (m *LedgerModel) refreshTable() {
	m.visible = transaction.SortRecords(
		transaction.Search(m.snap.Records, m.search.Value()),
		sortFields[m.sortIdx],
		m.sortDir,
	)

	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		rows = append(rows, table.Row{
			FormatDate(r.Date),
			r.Contractor,
			FormatAmount(r.Amount),
			string(r.Status),
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m LedgerModel) View() string {
	header := fmt.Sprintf(
		"Sort: [s] %s | [o] %s | %d of %d",
		activeStyle(string(sortFields[m.sortIdx])),
		activeStyle(string(m.sortDir)),
		len(m.visible),
		len(m.snap.Records),
	)

	var body string

	switch {
	case m.snap.State() == transaction.StateLoading && len(m.snap.Records) == 0:
		body = "Loading transactions..."
	case len(m.snap.Records) == 0:
		body = lipgloss.NewStyle().Faint(true).Render("No transactions yet. Press n to send money.")
	default:
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	parts := []string{}

	if m.snap.Err != "" {
		parts = append(parts, errorStyle.Render("Error: "+m.snap.Err))
	}

	if m.snap.State() == transaction.StateLoading && len(m.snap.Records) > 0 {
		parts = append(parts, lipgloss.NewStyle().Faint(true).Render("Refreshing..."))
	}

	parts = append(parts, m.search.View(), lipgloss.NewStyle().PaddingBottom(1).Render(header), body)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
