package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger holds an item together with its full transaction history and
// implements the value arithmetic. The storage layer loads a ledger under a
// row lock, mutates it through Apply/Toggle and persists the outcome, so two
// concurrent redemptions can never both pass the balance check.
type Ledger struct {
	Item         Item
	Transactions []Transaction
}

// CurrentValue returns the item's original value plus the sum of all recorded
// transactions. Write-time checks guarantee the result is never negative.
func (l *Ledger) CurrentValue() decimal.Decimal {
	v := l.Item.Value
	for _, t := range l.Transactions {
		v = v.Add(t.Value)
	}
	return v
}

// Apply validates and records a redemption. The transaction value must be
// strictly negative and must not drive the current value below zero. When the
// resulting value hits exactly zero the item is marked used. On error the
// ledger is left unchanged.
func (l *Ledger) Apply(description string, value decimal.Decimal, now time.Time) (Transaction, error) {
	if value.Sign() >= 0 {
		return Transaction{}, ErrNonNegativeTransaction
	}
	if l.CurrentValue().Add(value).IsNegative() {
		return Transaction{}, ErrNegativeLedger
	}

	t := Transaction{
		Base:        Base{ID: uuid.New(), CreatedAt: now},
		ItemID:      l.Item.ID,
		Description: description,
		Value:       value,
	}
	l.Transactions = append(l.Transactions, t)

	if l.CurrentValue().IsZero() {
		l.Item.IsUsed = true
	}

	return t, nil
}

// Toggle flips the item between available and used.
//
// Marking used records a synthetic transaction removing the remaining value.
// Marking available again deletes the synthetic transaction(s) and restores
// the previous value; if the user deleted the synthetic transaction by hand
// in the meantime there is nothing to remove and only the flag is cleared.
func (l *Ledger) Toggle(now time.Time) (added *Transaction, removed []uuid.UUID) {
	if l.Item.IsUsed {
		kept := l.Transactions[:0]
		for _, t := range l.Transactions {
			if t.Synthetic {
				removed = append(removed, t.ID)
				continue
			}
			kept = append(kept, t)
		}
		l.Transactions = kept
		l.Item.IsUsed = false
		return nil, removed
	}

	t := Transaction{
		Base:        Base{ID: uuid.New(), CreatedAt: now},
		ItemID:      l.Item.ID,
		Description: SyntheticDescription,
		Value:       l.CurrentValue().Neg(),
		Synthetic:   true,
	}
	l.Transactions = append(l.Transactions, t)
	l.Item.IsUsed = true

	return &t, nil
}
