package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownItemType  = errors.New("unknown item type")
	ErrUnknownValueType = errors.New("unknown value type")
	ErrNegativeValue    = errors.New("value must be positive")
	ErrLoyaltyCardValue = errors.New("value must be zero for loyalty cards")
	ErrPercentageRange  = errors.New("percentage value must be between 0 and 100")
	ErrMultiplierRange  = errors.New("multiplier must be 1 or higher")

	ErrNonNegativeTransaction = errors.New("transaction value must be negative")
	ErrNegativeLedger         = errors.New("transaction would result in negative item value")

	ErrShareExists    = errors.New("item is already shared with this user")
	ErrSelfShare      = errors.New("can't share an item with its owner")
	ErrNoDestinations = errors.New("no notification destinations configured")
)

type Base struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
