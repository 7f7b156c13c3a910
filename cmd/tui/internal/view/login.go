package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MomchilovP/peachtree/internal/session"
)

type loginFields struct {
	username string
	password string
	fullName string
}

type LoginModel struct {
	CommonModel
	session *session.Session

	register   bool
	fields     *loginFields
	form       *huh.Form
	submitting bool
	err        string
}

func NewLoginModel(s *session.Session, notice string, timeout time.Duration) LoginModel {
	m := LoginModel{
		CommonModel: CommonModel{Timeout: timeout},
		session:     s,
		fields:      &loginFields{},
		err:         notice,
	}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string {
	if m.register {
		return "Create Account"
	}

	return "Log In"
}

func (m LoginModel) ShortHelp() string {
	if m.register {
		return "Enter: next | ctrl+r: back to log in | ctrl+c: quit"
	}

	return "Enter: next | ctrl+r: create account | ctrl+c: quit"
}

func (m LoginModel) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("username").
			Title("Username").
			Value(&m.fields.username).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("username is required")
				}

				return nil
			}),
		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fields.password).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("password is required")
				}

				return nil
			}),
	}

	if m.register {
		fields = append(fields, huh.NewInput().
			Key("full_name").
			Title("Full name").
			Placeholder("optional").
			Value(&m.fields.fullName))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

type loginResultMsg struct {
	err error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.submitting = false

		if msg.err != nil {
			m.err = msg.err.Error()
			m.fields.password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.err = ""

		return m, func() tea.Msg { return LoggedInMsg{} }

	case tea.KeyMsg:
		if msg.String() == "ctrl+r" && !m.submitting {
			m.register = !m.register
			m.err = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.form = m.buildForm()
		return m, m.form.Init()
	case huh.StateNormal:
		return m, cmd
	}

	m.submitting = true
	m.err = ""

	return m, m.submitCmd()
}

func (m LoginModel) submitCmd() tea.Cmd {
	username := strings.TrimSpace(m.fields.username)
	password := m.fields.password
	fullName := strings.TrimSpace(m.fields.fullName)
	register := m.register
	timeout := m.Timeout

	return func() tea.Msg {
		ctx, cancel := RequestCtx(timeout)
		defer cancel()

		if register {
			return loginResultMsg{err: m.session.Register(ctx, username, password, fullName)}
		}

		return loginResultMsg{err: m.session.Login(ctx, username, password)}
	}
}

func (m LoginModel) View() string {
	title := lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render(m.Title())

	body := m.form.View()
	if m.submitting {
		body = "Signing in..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	if m.err != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, errorStyle.Render(fmt.Sprintf("Error: %s", m.err)), "", content)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
