package view

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MomchilovP/peachtree/internal/transaction"
)

type draftFields struct {
	toAccount string
	amount    string
	status    transaction.Status
}

// FormModel collects a new transaction. A rejected submission keeps what
// the user typed so it can be corrected and resent.
type FormModel struct {
	CommonModel
	ledger *transaction.Ledger

	fields     *draftFields
	form       *huh.Form
	submitting bool
	err        string
}

func NewFormModel(l *transaction.Ledger, timeout time.Duration) FormModel {
	d := transaction.NewDraft()

	m := FormModel{
		CommonModel: CommonModel{Timeout: timeout},
		ledger:      l,
		fields:      &draftFields{status: d.Type},
	}
	m.form = m.buildForm()

	return m
}

func (m FormModel) Title() string { return "New Transaction" }

func (m FormModel) ShortHelp() string {
	return "Enter/Tab: next | Esc: cancel"
}

func (m FormModel) buildForm() *huh.Form {
	options := make([]huh.Option[transaction.Status], 0, len(transaction.Statuses))
	for _, s := range transaction.Statuses {
		options = append(options, huh.NewOption(string(s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("to").
				Title("To account").
				Placeholder("recipient username").
				Value(&m.fields.toAccount).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("to account cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),

			huh.NewSelect[transaction.Status]().
				Key("type").
				Title("Type").
				Options(options...).
				Value(&m.fields.status),
		),
	).WithWidth(45).WithShowHelp(false)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, errors.New("amount must be a number")
	}

	if !d.IsPositive() {
		return decimal.Zero, errors.New("amount must be greater than zero")
	}

	return d, nil
}

func (m FormModel) Init() tea.Cmd {
	return m.form.Init()
}

type createdMsg struct {
	err error
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createdMsg:
		m.submitting = false

		if msg.err != nil {
			m.err = msg.err.Error()
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, Back

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && !m.submitting {
			return m, Back
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	draft, err := m.draft()
	if err == nil {
		err = draft.Validate()
	}

	if err != nil {
		m.err = err.Error()
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	m.submitting = true
	m.err = ""

	return m, m.createCmd(draft)
}

func (m FormModel) draft() (transaction.Draft, error) {
	amount, err := parseAmount(m.fields.amount)
	if err != nil {
		return transaction.Draft{}, err
	}

	return transaction.Draft{
		ToAccount: strings.TrimSpace(m.fields.toAccount),
		Amount:    amount,
		Type:      m.fields.status,
	}, nil
}

func (m FormModel) createCmd(d transaction.Draft) tea.Cmd {
	l, timeout := m.ledger, m.Timeout

	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		_, err := l.Create(ctx, d)

		return createdMsg{err: err}
	}
}

func (m FormModel) View() string {
	title := lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.Title())

	body := m.form.View()
	if m.submitting {
		body = "Sending..."
	}

	parts := []string{title}
	if m.err != "" {
		parts = append(parts, errorStyle.Render("Error: "+m.err), "")
	}

	parts = append(parts, body)

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
