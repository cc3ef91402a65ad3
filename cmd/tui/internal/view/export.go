package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/export"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

// exportFields holds the export form bindings.
type exportFields struct {
	month string
	year  string
	path  string
}

type ExportModel struct {
	exportService *export.Service
	owner         *user.User

	state   exportState
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model

	summary string
	err     error
}

func NewExportModel(svc *export.Service, owner *user.User) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	fields := &exportFields{
		year: strconv.Itoa(time.Now().Year()),
		path: "./lancamentos.xlsx",
	}

	return ExportModel{
		exportService: svc,
		owner:         owner,
		state:         exportStateForm,
		fields:        fields,
		form:          buildExportForm(fields),
		spinner:       s,
	}
}

func buildExportForm(fields *exportFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Mês").
				Description("Deixe em branco para todos").
				Value(&fields.month).
				Validate(optionalInt),
			huh.NewInput().
				Title("Ano").
				Description("Deixe em branco para todos").
				Value(&fields.year).
				Validate(optionalInt),
			huh.NewInput().
				Title("Arquivo").
				Placeholder("./lancamentos.xlsx").
				Value(&fields.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func optionalInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("must be a number")
	}

	return nil
}

func (m ExportModel) Title() string { return "Exportar Lançamentos" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != exportStateExporting {
		return m, Back
	}

	switch m.state {
	case exportStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = exportStateExporting
		m.err = nil

		return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.fields))

	case exportStateExporting:
		if result, ok := msg.(exportResultMsg); ok {
			m.state = exportStateResult
			m.err = result.err
			m.summary = result.summary

			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exportando lançamentos...", m.spinner.View()),
		)

	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(errorText(m.err)))
		}

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")).
			Render("Export Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", m.summary),
		)
	}

	return ""
}

type exportResultMsg struct {
	summary string
	err     error
}

func (m ExportModel) runExportCmd(fields exportFields) tea.Cmd {
	example := &entry.Entry{User: m.owner}
	example.Month, _ = strconv.Atoi(strings.TrimSpace(fields.month))
	example.Year, _ = strconv.Atoi(strings.TrimSpace(fields.year))
	filter := entry.FilterFrom(example)

	path := strings.TrimSpace(fields.path)
	if path == "" {
		path = "./lancamentos.xlsx"
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating output directory: %w", err)}
		}

		f, err := os.Create(path)
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("creating file: %w", err)}
		}
		defer f.Close()

		n, err := m.exportService.Export(ctx, filter, f)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{summary: fmt.Sprintf("%d lançamentos gravados em %s", n, path)}
	}
}
