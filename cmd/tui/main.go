package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/bruno-santana/minhas-financas-api/cmd/tui/internal/view"
	"github.com/bruno-santana/minhas-financas-api/internal/app"
	"github.com/bruno-santana/minhas-financas-api/internal/config"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

type View int

const (
	ViewLogin   View = 0
	ViewMenu    View = 1
	ViewEntries View = 2
	ViewImport  View = 3
	ViewExport  View = 4
)

type model struct {
	services *app.Services
	owner    *user.User

	currentView View

	loginView   view.LoginModel
	entriesView view.EntriesModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

func initialModel(services *app.Services) model {
	return model{
		services:    services,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(services.Users),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewEntries
				m.entriesView = view.NewEntriesModel(m.services.Entries, m.owner)

				return m, m.entriesView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.services.Entries, m.services.Parser, m.owner)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.services.Export, m.owner)

				return m, m.exportView.Init()
			}
		}
	case view.LoggedInMsg:
		m.owner = msg.User
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewEntries:
		var newModel tea.Model
		newModel, cmd = m.entriesView.Update(msg)
		m.entriesView = newModel.(view.EntriesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewLogin:
		return m.loginView
	case ViewEntries:
		return m.entriesView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

var helpStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(2)

func (m model) View() string {
	if m.currentView == ViewMenu {
		return lipgloss.NewStyle().Padding(2).Render(
			"Minhas Finanças - " + m.owner.Name + "\n\n" +
				"1. Lançamentos\n" +
				"2. Importar CSV\n" +
				"3. Exportar XLSX\n\n" +
				"q. Sair",
		)
	}

	v := m.current()
	if v == nil {
		return "Unknown View"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingLeft(2).Render(v.Title()),
		v.View(),
		helpStyle.Render(v.ShortHelp()),
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	services, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialise services", "error", err)
		os.Exit(1)
	}
	defer services.Close()

	p := tea.NewProgram(initialModel(services))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
