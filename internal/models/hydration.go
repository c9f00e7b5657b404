package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/brightwell/internal/constants"
)

// HydrationEntry records one drink. Day is fixed to the local day of Timestamp when
// the entry is created and is not recomputed if the timezone setting changes later.
type HydrationEntry struct {
	ID        string    `json:"id"`
	AmountMl  int       `json:"amount_ml"`
	Timestamp time.Time `json:"timestamp"`
	Day       string    `json:"day"` // YYYY-MM-DD format
}

// NewHydrationEntry records amountMl at the given instant. at must already be in
// the configured location; its calendar day becomes the entry's Day.
func NewHydrationEntry(amountMl int, at time.Time) HydrationEntry {
	return HydrationEntry{
		ID:        uuid.New().String(),
		AmountMl:  amountMl,
		Timestamp: at,
		Day:       at.Format(constants.DateFormat),
	}
}
