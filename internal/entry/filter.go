package entry

import (
	"github.com/google/uuid"
)

// Filter selects entries by example. Nil fields are not compared.
type Filter struct {
	Description *string
	Month       *int
	Year        *int
	UserID      *uuid.UUID
}

// FilterFrom builds a Filter from the fields set on an example entry.
func FilterFrom(example *Entry) Filter {
	var f Filter

	if example.Description != "" {
		f.Description = new(example.Description)
	}

	if example.Month != 0 {
		f.Month = new(example.Month)
	}

	if example.Year != 0 {
		f.Year = new(example.Year)
	}

	if example.User != nil && example.User.ID != uuid.Nil {
		f.UserID = new(example.User.ID)
	}

	return f
}

// Matches reports whether e has every field set on the filter.
func (f Filter) Matches(e *Entry) bool {
	if f.Description != nil && e.Description != *f.Description {
		return false
	}

	if f.Month != nil && e.Month != *f.Month {
		return false
	}

	if f.Year != nil && e.Year != *f.Year {
		return false
	}

	if f.UserID != nil && (e.User == nil || e.User.ID != *f.UserID) {
		return false
	}

	return true
}
