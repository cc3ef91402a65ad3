// Package export writes entries to spreadsheet files.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
)

const SheetName = "Lançamentos"

// ContentType is the media type of the workbooks written by Export.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []any{"Descrição", "Mês", "Ano", "Valor", "Tipo", "Status", "Data de Cadastro"}

// Totals sums the listed entries per type. Canceled entries are left out.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func Sum(entries []*entry.Entry) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}

	for _, e := range entries {
		if e.Status == entry.StatusCanceled {
			continue
		}

		switch e.Type {
		case entry.TypeIncome:
			totals.Income = totals.Income.Add(e.Value)
		case entry.TypeExpense:
			totals.Expense = totals.Expense.Add(e.Value)
		}
	}

	return totals
}

// Service handles the export of entries.
type Service struct {
	entries *entry.Service
}

func NewService(entries *entry.Service) *Service {
	return &Service{entries: entries}
}

// Export writes an XLSX workbook with the entries matching filter to w and
// returns how many entries it wrote.
func (s *Service) Export(ctx context.Context, filter entry.Filter, w io.Writer) (int, error) {
	entries, err := s.entries.Search(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("searching entries: %w", err)
	}

	if err := WriteXLSX(w, entries); err != nil {
		return 0, err
	}

	return len(entries), nil
}

// WriteXLSX writes one row per entry below a header row, followed by the
// income, expense and balance totals.
func WriteXLSX(w io.Writer, entries []*entry.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", "G1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	row := 2
	for _, e := range entries {
		values := []any{
			e.Description,
			e.Month,
			e.Year,
			e.Value.InexactFloat64(),
			string(e.Type),
			string(e.Status),
			registrationDate(e.RegistrationDate),
		}

		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	totals := Sum(entries)
	row++

	for _, t := range []struct {
		label string
		value decimal.Decimal
	}{
		{"Total de Receitas", totals.Income},
		{"Total de Despesas", totals.Expense},
		{"Saldo", totals.Balance()},
	} {
		if err := setRow(f, row, []any{t.label, nil, nil, t.value.InexactFloat64()}); err != nil {
			return err
		}

		label, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellStyle(SheetName, label, label, bold); err != nil {
			return fmt.Errorf("styling totals: %w", err)
		}
		row++
	}

	if err := f.SetCellStyle(SheetName, "D2", fmt.Sprintf("D%d", row-1), money); err != nil {
		return fmt.Errorf("styling values: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "A", 40); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d: %w", row, err)
	}

	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}

	return nil
}

func registrationDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("02/01/2006")
}
