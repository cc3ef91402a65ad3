package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
)

// ErrMissingID and ErrNilEntry signal a caller bug, not a business outcome.
// ErrMissingID is returned when an entry that was never stored is updated or
// deleted.
var (
	ErrMissingID = fmt.Errorf("%w: entry has no id", apperr.ErrInvalidUsage)
	ErrNilEntry  = fmt.Errorf("%w: nil entry", apperr.ErrInvalidUsage)
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=entry
type Repository interface {
	CreateEntry(ctx context.Context, e *Entry) error
	SaveEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
	GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, filter Filter) ([]*Entry, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create validates e and stores it as a pending entry. The returned entry
// carries the id assigned by the repository. e is only updated once the
// repository accepts the entry.
func (s *Service) Create(ctx context.Context, e *Entry) (*Entry, error) {
	if err := Validate(e); err != nil {
		return nil, err
	}

	pending := *e
	pending.Status = StatusPending
	pending.RegistrationDate = s.now()

	if err := s.repo.CreateEntry(ctx, &pending); err != nil {
		return nil, err
	}

	*e = pending

	return e, nil
}

func (s *Service) Update(ctx context.Context, e *Entry) (*Entry, error) {
	if e == nil {
		return nil, ErrNilEntry
	}

	if e.ID == uuid.Nil {
		return nil, ErrMissingID
	}

	if err := Validate(e); err != nil {
		return nil, err
	}

	if err := s.repo.SaveEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, e *Entry) error {
	if e == nil {
		return ErrNilEntry
	}

	if e.ID == uuid.Nil {
		return ErrMissingID
	}

	return s.repo.DeleteEntry(ctx, e.ID)
}

// UpdateStatus moves e to status and stores it through Update.
func (s *Service) UpdateStatus(ctx context.Context, e *Entry, status Status) (*Entry, error) {
	if e == nil {
		return nil, ErrNilEntry
	}

	e.Status = status
	return s.Update(ctx, e)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

// Search returns the entries matching filter in repository order.
func (s *Service) Search(ctx context.Context, filter Filter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// Rejection is an entry of a batch that failed a business rule.
type Rejection struct {
	Index  int
	Entry  *Entry
	Reason string
}

type BatchResult struct {
	Created  []*Entry
	Rejected []Rejection
}

// CreateBatch creates every entry in order. Entries failing validation are
// reported in Rejected; any other error stops the batch.
func (s *Service) CreateBatch(ctx context.Context, entries []*Entry) (*BatchResult, error) {
	result := &BatchResult{}

	for i, e := range entries {
		created, err := s.Create(ctx, e)
		if err != nil {
			if apperr.IsBusiness(err) {
				result.Rejected = append(result.Rejected, Rejection{Index: i, Entry: e, Reason: apperr.Message(err)})
				continue
			}

			return result, fmt.Errorf("creating entry %d: %w", i, err)
		}

		result.Created = append(result.Created, created)
	}

	return result, nil
}

// Balance is confirmed income minus confirmed expense for a user.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	entries, err := s.repo.ListEntries(ctx, Filter{UserID: &userID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing entries: %w", err)
	}

	balance := decimal.Zero

	for _, e := range entries {
		if e.Status != StatusConfirmed {
			continue
		}

		switch e.Type {
		case TypeIncome:
			balance = balance.Add(e.Value)
		case TypeExpense:
			balance = balance.Sub(e.Value)
		}
	}

	return balance, nil
}
