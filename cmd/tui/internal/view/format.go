package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
	"github.com/bruno-santana/minhas-financas-api/internal/entry"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

// FormatValue formats an amount as "1.234,56".
func FormatValue(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if v.IsNegative() {
		sign = "-"
	}

	return sign + b.String() + "," + frac
}

// FormatPeriod formats a month and year as MM/YYYY.
func FormatPeriod(month, year int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}

func typeLabel(t entry.Type) string {
	switch t {
	case entry.TypeIncome:
		return "Receita"
	case entry.TypeExpense:
		return "Despesa"
	}

	return string(t)
}

func statusLabel(s entry.Status) string {
	switch s {
	case entry.StatusPending:
		return "Pendente"
	case entry.StatusConfirmed:
		return "Efetivado"
	case entry.StatusCanceled:
		return "Cancelado"
	}

	return string(s)
}

// errorText shows business failures by their message and anything else as is.
func errorText(err error) string {
	if msg := apperr.Message(err); msg != "" {
		return msg
	}

	return fmt.Sprintf("Error: %v", err)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
