package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemShare grants another user read and redeem access to an item.
// At most one share may exist per (item, recipient) pair.
type ItemShare struct {
	ID         int       `json:"id"`
	ItemID     uuid.UUID `json:"item_id"`
	SharedBy   int       `json:"shared_by"`
	SharedWith int       `json:"shared_with"`
	CreatedAt  time.Time `json:"created_at"`
}
