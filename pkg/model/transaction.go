package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SyntheticDescription is the description of the adjustment transaction created
// when an item is manually marked as used. The transaction is identified by the
// Synthetic flag, the description is kept for display only.
const SyntheticDescription = "Marked as used, removing remaining value"

type Transaction struct {
	Base
	ItemID      uuid.UUID       `json:"item_id"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Synthetic   bool            `json:"synthetic"`
}
