package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

const (
	actionLogin    = "login"
	actionRegister = "register"
)

// LoggedInMsg is sent once a user has authenticated or registered.
type LoggedInMsg struct {
	User *user.User
}

// loginFields holds the form bindings. It lives on the heap so that copies of
// LoginModel keep writing to the same values.
type loginFields struct {
	action   string
	name     string
	email    string
	password string
}

type LoginModel struct {
	users *user.Service

	form   *huh.Form
	fields *loginFields
	status string
}

func NewLoginModel(users *user.Service) LoginModel {
	m := LoginModel{users: users}
	m.reset()

	return m
}

func (m *LoginModel) reset() {
	fields := &loginFields{action: actionLogin}
	m.fields = fields

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Minhas Finanças").
				Options(
					huh.NewOption("Entrar", actionLogin),
					huh.NewOption("Cadastrar", actionRegister),
				).
				Value(&fields.action),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Nome").
				Value(&fields.name).
				Validate(notBlank("nome")),
		).WithHideFunc(func() bool { return fields.action != actionRegister }),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&fields.email).
				Validate(notBlank("email")),
			huh.NewInput().
				Title("Senha").
				EchoMode(huh.EchoModePassword).
				Value(&fields.password),
		),
	).WithWidth(50).WithShowHelp(false)
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}

func (m LoginModel) Title() string     { return "Login" }
func (m LoginModel) ShortHelp() string { return "Enter: next | ctrl+c: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(loginResultMsg); ok {
		if msg.err != nil {
			m.reset()
			m.status = errorText(msg.err)

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{User: msg.user} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.submitCmd(*m.fields)
}

func (m LoginModel) View() string {
	content := m.form.View()
	if m.status != "" {
		content = errorStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loginResultMsg struct {
	user *user.User
	err  error
}

func (m LoginModel) submitCmd(fields loginFields) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if fields.action == actionRegister {
			u, err := m.users.Register(ctx, &user.User{
				Name:     strings.TrimSpace(fields.name),
				Email:    strings.TrimSpace(fields.email),
				Password: fields.password,
			})

			return loginResultMsg{user: u, err: err}
		}

		u, err := m.users.Authenticate(ctx, strings.TrimSpace(fields.email), fields.password)

		return loginResultMsg{user: u, err: err}
	}
}
