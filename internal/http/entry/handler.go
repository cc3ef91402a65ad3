package entry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/export"
	"github.com/bruno-santana/minhas-financas-api/internal/importer"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

const maxUploadSize = 10 << 20

var (
	errUserNotFound       = apperr.Validation("Usuário não encontrado para o ID informado!")
	errSearchUserNotFound = apperr.Validation("Não foi possivel realizar a consulta.Usuário não encontrado para o ID informado!")
	errEntryNotFound      = apperr.Validation("Lançamento não localizado na base de dados!")
	errInvalidStatus      = apperr.Validation("Não foi possível atualizar o status do lançamento, envie um status válido.")
)

type Handler struct {
	entries *entry.Service
	users   *user.Service
	parser  *importer.Parser
	export  *export.Service
}

func NewHandler(entries *entry.Service, users *user.Service, parser *importer.Parser, exporter *export.Service) *Handler {
	return &Handler{
		entries: entries,
		users:   users,
		parser:  parser,
		export:  exporter,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/importar", h.importCSV)
	r.Get("/exportar", h.exportXLSX)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Put("/{id}/atualiza-status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

type entryRequest struct {
	Description string          `json:"descricao"`
	Month       int             `json:"mes"`
	Year        int             `json:"ano"`
	Value       decimal.Decimal `json:"valor"`
	Type        string          `json:"tipo"`
	Status      string          `json:"status"`
	User        string          `json:"usuario"`
}

// toEntry resolves the owner and parses the enumerations. An empty tipo is
// left unset so that validation reports it.
func (h *Handler) toEntry(ctx context.Context, req entryRequest) (*entry.Entry, error) {
	owner, err := h.resolveUser(ctx, req.User, errUserNotFound)
	if err != nil {
		return nil, err
	}

	e := &entry.Entry{
		Description: req.Description,
		Month:       req.Month,
		Year:        req.Year,
		Value:       req.Value,
		User:        owner,
	}

	if req.Type != "" {
		if e.Type, err = entry.ParseType(req.Type); err != nil {
			return nil, err
		}
	}

	if req.Status != "" {
		if e.Status, err = entry.ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (h *Handler) resolveUser(ctx context.Context, raw string, notFound error) (*user.User, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, notFound
	}

	u, err := h.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, notFound
		}

		return nil, fmt.Errorf("looking up user: %w", err)
	}

	return u, nil
}

// existing loads the entry named in the path, answering errEntryNotFound for
// ids that are malformed or unknown.
func (h *Handler) existing(r *http.Request) (*entry.Entry, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, errEntryNotFound
	}

	e, err := h.entries.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, entry.ErrNotFound) {
			return nil, errEntryNotFound
		}

		return nil, fmt.Errorf("loading entry: %w", err)
	}

	return e, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.toEntry(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.entries.Create(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	e, err := h.existing(r)
	if err != nil {
		if errors.Is(err, errEntryNotFound) {
			http.Error(w, apperr.Message(err), http.StatusNotFound)
			return
		}

		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	current, err := h.existing(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.toEntry(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	e.ID = current.ID
	e.RegistrationDate = current.RegistrationDate

	if e.Status == "" {
		e.Status = current.Status
	}

	updated, err := h.entries.Update(r.Context(), e)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(updated))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	e, err := h.existing(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, err := entry.ParseStatus(req.Status)
	if err != nil {
		writeError(w, errInvalidStatus)
		return
	}

	updated, err := h.entries.UpdateStatus(r.Context(), e, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	e, err := h.existing(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.entries.Delete(r.Context(), e); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// searchFilter reads descricao, mes, ano and the mandatory usuario from the
// query string. A given mes or ano is always applied, so out of range values
// such as mes=0 match nothing instead of being ignored.
func (h *Handler) searchFilter(r *http.Request) (entry.Filter, error) {
	q := r.URL.Query()

	owner, err := h.resolveUser(r.Context(), q.Get("usuario"), errSearchUserNotFound)
	if err != nil {
		return entry.Filter{}, err
	}

	filter := entry.FilterFrom(&entry.Entry{Description: q.Get("descricao"), User: owner})

	if s := q.Get("mes"); s != "" {
		month, err := strconv.Atoi(s)
		if err != nil {
			return entry.Filter{}, entry.ErrInvalidMonth
		}

		filter.Month = new(month)
	}

	if s := q.Get("ano"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			return entry.Filter{}, entry.ErrInvalidYear
		}

		filter.Year = new(year)
	}

	return filter, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := h.searchFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.entries.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(entries))
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	owner, err := h.resolveUser(r.Context(), r.FormValue("usuario"), errUserNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries := make([]*entry.Entry, len(rows))
	for i, row := range rows {
		row.Entry.User = owner
		entries[i] = row.Entry
	}

	result, err := h.entries.CreateBatch(r.Context(), entries)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toImportResponse(rows, result))
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	filter, err := h.searchFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.export.Export(r.Context(), filter, &buf); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"lancamentos_%s.xlsx\"", time.Now().Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

// writeError answers business failures and unparsable enumerations with 400
// and their message. Anything else is logged and hidden behind a 500.
func writeError(w http.ResponseWriter, err error) {
	var parseErr *entry.ParseError

	switch {
	case apperr.IsBusiness(err):
		http.Error(w, apperr.Message(err), http.StatusBadRequest)
	case errors.As(err, &parseErr):
		http.Error(w, parseErr.Error(), http.StatusBadRequest)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
