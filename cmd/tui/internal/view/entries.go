package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/importer"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

type entriesState int

const (
	entriesStateBrowse entriesState = iota
	entriesStateCreate
)

// entryFields holds the bindings of the new entry form.
type entryFields struct {
	description string
	month       string
	year        string
	value       string
	kind        string
}

type EntriesModel struct {
	entries *entry.Service
	owner   *user.User

	state   entriesState
	table   table.Model
	list    []*entry.Entry
	balance decimal.Decimal
	form    *huh.Form
	fields  *entryFields

	// Filter cycling
	periodFilterIdx int
	now             func() time.Time

	loading bool
	err     error
	status  string
}

func NewEntriesModel(entries *entry.Service, owner *user.User) EntriesModel {
	columns := []table.Column{
		{Title: "Período", Width: 9},
		{Title: "Descrição", Width: 36},
		{Title: "Tipo", Width: 9},
		{Title: "Status", Width: 10},
		{Title: "Valor", Width: 14},
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

	return EntriesModel{
		entries: entries,
		owner:   owner,
		table:   t,
		now:     time.Now,
		loading: true,
	}
}

func (m EntriesModel) Title() string { return "Lançamentos" }

func (m EntriesModel) ShortHelp() string {
	if m.state == entriesStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | n: new | c: confirm | x: cancel | p: pending | d: delete | m: period | r: refresh"
}

func (m EntriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.list = msg.entries
		m.balance = msg.balance
		m.refreshTable()

		return m, nil

	case entryChangedMsg:
		if msg.err != nil {
			m.status = errorText(msg.err)
		} else {
			m.status = msg.done
		}

		m.state = entriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case entriesStateBrowse:
		return m.updateBrowse(msg)
	case entriesStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m EntriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "m":
			m.periodFilterIdx = (m.periodFilterIdx + 1) % 3
			return m, m.loadCmd()
		case "n":
			return m.enterCreateMode()
		case "c":
			return m, m.statusCmd(entry.StatusConfirmed)
		case "x":
			return m, m.statusCmd(entry.StatusCanceled)
		case "p":
			return m, m.statusCmd(entry.StatusPending)
		case "d":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EntriesModel) enterCreateMode() (tea.Model, tea.Cmd) {
	now := m.now()
	fields := &entryFields{
		month: strconv.Itoa(int(now.Month())),
		year:  strconv.Itoa(now.Year()),
		kind:  string(entry.TypeExpense),
	}

	m.fields = fields
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Descrição").Value(&fields.description),
			huh.NewInput().Title("Mês").Value(&fields.month),
			huh.NewInput().Title("Ano").Value(&fields.year),
			huh.NewInput().Title("Valor").Placeholder("1.234,56").Value(&fields.value),
			huh.NewSelect[string]().
				Title("Tipo").
				Options(
					huh.NewOption("Despesa", string(entry.TypeExpense)),
					huh.NewOption("Receita", string(entry.TypeIncome)),
				).
				Value(&fields.kind),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = entriesStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m EntriesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = entriesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd(*m.fields)
}

func (m EntriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading entries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	periodLabels := []string{"Todos", "Este mês", "Este ano"}

	balance := successStyle.Render(FormatValue(m.balance))
	if m.balance.IsNegative() {
		balance = errorStyle.Render(FormatValue(m.balance))
	}

	header := fmt.Sprintf(
		"%s | [m] Período: %s | Saldo: %s",
		m.owner.Name,
		activeStyle(periodLabels[m.periodFilterIdx]),
		balance,
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == entriesStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Novo Lançamento\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// filter narrows the search to the owner and the selected period.
func (m EntriesModel) filter() entry.Filter {
	now := m.now()
	example := &entry.Entry{User: m.owner}

	switch m.periodFilterIdx {
	case 1:
		example.Month = int(now.Month())
		example.Year = now.Year()
	case 2:
		example.Year = now.Year()
	}

	return entry.FilterFrom(example)
}

func (m *EntriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.list))
	for _, e := range m.list {
		rows = append(rows, table.Row{
			FormatPeriod(e.Month, e.Year),
			e.Description,
			typeLabel(e.Type),
			statusLabel(e.Status),
			FormatValue(e.Value),
		})
	}

	m.table.SetRows(rows)
}

func (m EntriesModel) selected() *entry.Entry {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.list) {
		return nil
	}

	return m.list[idx]
}

// Messages

type entriesLoadedMsg struct {
	entries []*entry.Entry
	balance decimal.Decimal
	err     error
}

type entryChangedMsg struct {
	done string
	err  error
}

func (m EntriesModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.entries.Search(ctx, filter)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}

		balance, err := m.entries.Balance(ctx, m.owner.ID)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}

		return entriesLoadedMsg{entries: list, balance: balance}
	}
}

func (m EntriesModel) statusCmd(status entry.Status) tea.Cmd {
	e := m.selected()
	if e == nil || e.Status == status {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.entries.UpdateStatus(ctx, e, status); err != nil {
			return entryChangedMsg{err: err}
		}

		return entryChangedMsg{done: fmt.Sprintf("%s: %s", e.Description, statusLabel(status))}
	}
}

func (m EntriesModel) deleteCmd() tea.Cmd {
	e := m.selected()
	if e == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.entries.Delete(ctx, e); err != nil {
			return entryChangedMsg{err: err}
		}

		return entryChangedMsg{done: fmt.Sprintf("%s removido", e.Description)}
	}
}

func (m EntriesModel) createCmd(fields entryFields) tea.Cmd {
	e := newEntryFromFields(fields, m.owner)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.entries.Create(ctx, e); err != nil {
			return entryChangedMsg{err: err}
		}

		return entryChangedMsg{done: fmt.Sprintf("%s criado", e.Description)}
	}
}

// newEntryFromFields leaves unparsable numbers at zero so that validation
// reports them with its own message.
func newEntryFromFields(fields entryFields, owner *user.User) *entry.Entry {
	month, _ := strconv.Atoi(strings.TrimSpace(fields.month))
	year, _ := strconv.Atoi(strings.TrimSpace(fields.year))

	value, err := importer.ParseAmount(fields.value)
	if err != nil {
		value = decimal.Zero
	}

	kind, _ := entry.ParseType(fields.kind)

	return &entry.Entry{
		Description: fields.description,
		Month:       month,
		Year:        year,
		Value:       value,
		Type:        kind,
		User:        owner,
	}
}
