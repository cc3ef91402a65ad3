// Package importer reads entries from semicolon separated spreadsheets exported
// by banks or kept by hand.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
)

// Row is an entry read from the file together with its 1-based line number.
type Row struct {
	Line  int
	Entry *entry.Entry
}

type layout int

const (
	// layoutPeriod has separate month, year and type columns.
	layoutPeriod layout = iota
	// layoutDated has a date column and a signed value; negatives are expenses.
	layoutDated
)

// Profile describes the header of a supported file.
type Profile struct {
	Name     string
	Layout   layout
	DescCol  string
	ValueCol string
	MonthCol string // layoutPeriod
	YearCol  string // layoutPeriod
	TypeCol  string // layoutPeriod
	DateCol  string // layoutDated
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DescCol, p.ValueCol}

	switch p.Layout {
	case layoutPeriod:
		cols = append(cols, p.MonthCol, p.YearCol, p.TypeCol)
	case layoutDated:
		cols = append(cols, p.DateCol)
	}

	return cols
}

// profiles are tried in order; column names are compared after normalizeHeader.
var profiles = []Profile{
	{
		Name:     "planilha",
		Layout:   layoutPeriod,
		DescCol:  "descricao",
		ValueCol: "valor",
		MonthCol: "mes",
		YearCol:  "ano",
		TypeCol:  "tipo",
	},
	{
		Name:     "extrato",
		Layout:   layoutDated,
		DescCol:  "descricao",
		ValueCol: "valor",
		DateCol:  "data",
	},
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse returns one Row per data line. Cells that cannot be read are left at
// their zero value so that entry validation reports them; only the dated
// layout skips lines whose date does not parse (balances, footers).
func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, charset, err := toUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, lines, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, fmt.Errorf("no matching layout found: expected columns for planilha or extrato")
	}

	slog.Debug("parsing entries file", "profile", profile.Name, "charset", charset)

	var rows []Row

	for i, record := range records[headerIdx+1:] {
		if blank(record) {
			continue
		}

		e, ok := parseRecord(profile, cols, record)
		if !ok {
			continue
		}

		rows = append(rows, Row{Line: lines[headerIdx+1+i], Entry: e})
	}

	return rows, nil
}

// readAll reads every record and the file line it starts on. encoding/csv
// skips empty lines, so record indexes alone do not give line numbers.
func readAll(reader *csv.Reader) ([][]string, []int, error) {
	var (
		records [][]string
		lines   []int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return records, lines, nil
		}

		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
}

// colIndex maps normalized column names to their index in the record.
type colIndex map[string]int

func detectProfile(records [][]string) (*Profile, colIndex, int) {
	for rowIdx, record := range records {
		cols := make(colIndex)

		for i, cell := range record {
			if name := normalizeHeader(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// normalizeHeader lowercases a header cell and drops accents and a trailing
// dot, so "Descrição", "DESCRICAO" and "Mês." compare equal to their plain
// forms.
func normalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)

	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}

	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(out)), ".")
}

func parseRecord(p *Profile, cols colIndex, record []string) (*entry.Entry, bool) {
	e := &entry.Entry{Description: cellValue(record, cols[p.DescCol])}

	value, _ := ParseAmount(cellValue(record, cols[p.ValueCol]))

	switch p.Layout {
	case layoutPeriod:
		e.Month, _ = strconv.Atoi(cellValue(record, cols[p.MonthCol]))
		e.Year, _ = strconv.Atoi(cellValue(record, cols[p.YearCol]))
		e.Type, _ = entry.ParseType(cellValue(record, cols[p.TypeCol]))
		e.Value = value

	case layoutDated:
		date, err := time.Parse("02/01/2006", cellValue(record, cols[p.DateCol]))
		if err != nil {
			return nil, false
		}

		e.Month = int(date.Month())
		e.Year = date.Year()
		e.Type = entry.TypeIncome

		if value.IsNegative() {
			e.Type = entry.TypeExpense
		}

		e.Value = value.Abs()
	}

	return e, true
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
