package entry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/importer"
)

type entryResponse struct {
	ID               uuid.UUID       `json:"id"`
	Description      string          `json:"descricao"`
	Month            int             `json:"mes"`
	Year             int             `json:"ano"`
	Value            decimal.Decimal `json:"valor"`
	Type             entry.Type      `json:"tipo"`
	Status           entry.Status    `json:"status"`
	UserID           uuid.UUID       `json:"usuario"`
	RegistrationDate string          `json:"dataCadastro,omitempty"`
}

func toResponse(e *entry.Entry) entryResponse {
	resp := entryResponse{
		ID:          e.ID,
		Description: e.Description,
		Month:       e.Month,
		Year:        e.Year,
		Value:       e.Value,
		Type:        e.Type,
		Status:      e.Status,
	}

	if e.User != nil {
		resp.UserID = e.User.ID
	}

	if !e.RegistrationDate.IsZero() {
		resp.RegistrationDate = e.RegistrationDate.Format(time.DateOnly)
	}

	return resp
}

func toResponseList(entries []*entry.Entry) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e)
	}

	return resp
}

type rejectionResponse struct {
	Line   int    `json:"linha"`
	Reason string `json:"motivo"`
}

type importResponse struct {
	Imported int                 `json:"importados"`
	Entries  []entryResponse     `json:"lancamentos"`
	Rejected []rejectionResponse `json:"rejeitados"`
}

func toImportResponse(rows []importer.Row, result *entry.BatchResult) importResponse {
	resp := importResponse{
		Imported: len(result.Created),
		Entries:  toResponseList(result.Created),
		Rejected: make([]rejectionResponse, 0, len(result.Rejected)),
	}

	for _, r := range result.Rejected {
		resp.Rejected = append(resp.Rejected, rejectionResponse{
			Line:   rows[r.Index].Line,
			Reason: r.Reason,
		})
	}

	return resp
}
