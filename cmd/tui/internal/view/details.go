package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MomchilovP/peachtree/internal/transaction"
)

type DetailsModel struct {
	CommonModel
	ledger *transaction.Ledger

	id         string
	record     transaction.Record
	found      bool
	status     *transaction.Status
	form       *huh.Form
	submitting bool
	err        string
}

func NewDetailsModel(l *transaction.Ledger, id string, timeout time.Duration) DetailsModel {
	rec, ok := l.FindByID(id)

	m := DetailsModel{
		CommonModel: CommonModel{Timeout: timeout},
		ledger:      l,
		id:          id,
		record:      rec,
		found:       ok,
		status:      new(rec.Status),
	}
	m.form = m.buildForm()

	return m
}

func (m DetailsModel) Title() string { return "Transaction Details" }

func (m DetailsModel) ShortHelp() string {
	return "Enter: change status | Esc: back"
}

func (m DetailsModel) buildForm() *huh.Form {
	options := make([]huh.Option[transaction.Status], 0, len(transaction.Statuses))
	for _, s := range transaction.Statuses {
		options = append(options, huh.NewOption(string(s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Status]().
				Key("status").
				Title("Status").
				Options(options...).
				Value(m.status),
		),
	).WithWidth(30).WithShowHelp(false)
}

func (m DetailsModel) Init() tea.Cmd {
	return m.form.Init()
}

type statusUpdatedMsg struct {
	err error
}

func (m DetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		for _, r := range msg.Snapshot.Records {
			if r.ID == m.id {
				m.record, m.found = r, true
			}
		}

		return m, nil

	case statusUpdatedMsg:
		m.submitting = false

		if msg.err != nil {
			m.err = msg.err.Error()
			*m.status = m.record.Status
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.submitting {
			return m, Back
		}
	}

	if m.submitting || !m.found {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if *m.status == m.record.Status {
		return m, Back
	}

	m.submitting = true
	m.err = ""

	return m, m.updateCmd(*m.status)
}

func (m DetailsModel) updateCmd(status transaction.Status) tea.Cmd {
	l, id, timeout := m.ledger, m.id, m.Timeout

	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		return statusUpdatedMsg{err: l.UpdateStatus(ctx, id, status)}
	}
}

func (m DetailsModel) View() string {
	title := lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.Title())

	if !m.found {
		return lipgloss.NewStyle().Padding(1, 2).Render(title + "\n\nTransaction not found.")
	}

	r := m.record
	label := lipgloss.NewStyle().Faint(true).Width(14)

	rows := []string{
		label.Render("ID") + r.ID,
		label.Render("Date") + FormatDate(r.Date),
		label.Render("From") + r.FromAccount,
		label.Render("To") + r.ToAccount,
		label.Render("Amount") + FormatAmount(r.Amount),
		label.Render("Kind") + r.Kind,
	}

	parts := []string{title, lipgloss.JoinVertical(lipgloss.Left, rows...), ""}

	if m.err != "" {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("Error: %s", m.err)), "")
	}

	if m.submitting {
		parts = append(parts, "Saving...")
	} else {
		parts = append(parts, m.form.View())
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
