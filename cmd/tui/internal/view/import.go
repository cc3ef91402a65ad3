package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/importer"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	entries *entry.Service
	parser  *importer.Parser
	owner   *user.User

	state      importState
	filePicker filepicker.Model
	rejected   list.Model

	status string
	err    error
}

func NewImportModel(entries *entry.Service, parser *importer.Parser, owner *user.User) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		entries:    entries,
		parser:     parser,
		owner:      owner,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Importar Lançamentos" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: back | ↑/↓: scroll rejected lines"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateResult {
			var cmd tea.Cmd
			m.rejected, cmd = m.rejected.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = errorText(msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("%d lançamentos importados, %d rejeitados.", len(msg.result.Created), len(msg.result.Rejected))
		m.rejected = newRejectedList(msg.rows, msg.result.Rejected)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Selecione o arquivo CSV (planilha ou extrato):\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	content := successStyle.Render(m.status)
	if len(m.rejected.Items()) > 0 {
		content += "\n\n" + m.rejected.View()
	}

	return style.Render(content + "\n\n(Esc to go back)")
}

// Rejected line list

type rejectedItem struct {
	line   int
	desc   string
	reason string
}

func (i rejectedItem) Title() string       { return fmt.Sprintf("Linha %d: %s", i.line, i.desc) }
func (i rejectedItem) Description() string { return i.reason }
func (i rejectedItem) FilterValue() string { return i.desc }

func newRejectedList(rows []importer.Row, rejected []entry.Rejection) list.Model {
	items := make([]list.Item, len(rejected))
	for i, r := range rejected {
		items[i] = rejectedItem{
			line:   rows[r.Index].Line,
			desc:   r.Entry.Description,
			reason: r.Reason,
		}
	}

	l := list.New(items, list.NewDefaultDelegate(), 80, 14)
	l.Title = "Linhas rejeitadas"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// Messages

type importResultMsg struct {
	rows   []importer.Row
	result *entry.BatchResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := m.parser.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		batch := make([]*entry.Entry, len(rows))
		for i, row := range rows {
			row.Entry.User = m.owner
			batch[i] = row.Entry
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.entries.CreateBatch(ctx, batch)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{rows: rows, result: result}
	}
}
