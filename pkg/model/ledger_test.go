package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testLedger(value string) *Ledger {
	return &Ledger{
		Item: Item{
			Base:      Base{ID: uuid.New()},
			Type:      TypeGiftCard,
			Value:     dec(value),
			ValueType: ValueMoney,
		},
	}
}

func TestLedgerCurrentValue(t *testing.T) {
	l := testLedger("50.00")

	if got := l.CurrentValue(); !got.Equal(dec("50.00")) {
		t.Fatalf("CurrentValue() = %s, want 50.00", got)
	}

	now := time.Now()
	if _, err := l.Apply("groceries", dec("-19.99"), now); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := l.Apply("fuel", dec("-30.01"), now); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := l.CurrentValue(); !got.IsZero() {
		t.Errorf("CurrentValue() = %s, want 0", got)
	}
	if got := l.CurrentValue(); got.IsNegative() {
		t.Errorf("CurrentValue() went negative: %s", got)
	}
}

func TestLedgerApplyRejectsNonNegative(t *testing.T) {
	now := time.Now()

	for _, v := range []string{"0", "5.00"} {
		l := testLedger("10.00")

		_, err := l.Apply("deposit", dec(v), now)
		if !errors.Is(err, ErrNonNegativeTransaction) {
			t.Errorf("Apply(%s) = %v, want ErrNonNegativeTransaction", v, err)
		}
		if len(l.Transactions) != 0 {
			t.Errorf("Apply(%s) left %d transactions behind", v, len(l.Transactions))
		}
		if !l.CurrentValue().Equal(dec("10.00")) {
			t.Errorf("Apply(%s) changed current value to %s", v, l.CurrentValue())
		}
	}
}

func TestLedgerApplyRejectsOverdraft(t *testing.T) {
	l := testLedger("10.00")

	_, err := l.Apply("too much", dec("-10.01"), time.Now())
	if !errors.Is(err, ErrNegativeLedger) {
		t.Fatalf("Apply() = %v, want ErrNegativeLedger", err)
	}
	if len(l.Transactions) != 0 || l.Item.IsUsed {
		t.Error("failed Apply mutated the ledger")
	}
}

func TestLedgerApplyMarksUsedAtZero(t *testing.T) {
	l := testLedger("10.00")

	if _, err := l.Apply("half", dec("-5.00"), time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if l.Item.IsUsed {
		t.Error("item marked used before value reached zero")
	}

	if _, err := l.Apply("rest", dec("-5.00"), time.Now()); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !l.Item.IsUsed {
		t.Error("item not marked used when value reached zero")
	}
}

func TestLedgerToggleRoundTrip(t *testing.T) {
	now := time.Now()
	l := testLedger("30.00")

	if _, err := l.Apply("partial", dec("-10.00"), now); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	before := l.CurrentValue()

	added, removed := l.Toggle(now)
	if added == nil || len(removed) != 0 {
		t.Fatalf("Toggle() = (%v, %v), want synthetic transaction added", added, removed)
	}
	if !added.Synthetic || added.Description != SyntheticDescription {
		t.Errorf("synthetic transaction = %+v", added)
	}
	if !l.Item.IsUsed {
		t.Error("item not marked used after toggle")
	}
	if !l.CurrentValue().IsZero() {
		t.Errorf("CurrentValue() = %s after marking used, want 0", l.CurrentValue())
	}

	added, removed = l.Toggle(now)
	if added != nil || len(removed) != 1 {
		t.Fatalf("Toggle() back = (%v, %v), want one removed transaction", added, removed)
	}
	if l.Item.IsUsed {
		t.Error("item still marked used after toggling back")
	}
	if !l.CurrentValue().Equal(before) {
		t.Errorf("CurrentValue() = %s after round trip, want %s", l.CurrentValue(), before)
	}
}

func TestLedgerToggleBackWithoutSynthetic(t *testing.T) {
	// The user may delete the synthetic transaction by hand before toggling
	// back. In that case there is nothing to remove, only the flag changes.
	l := testLedger("30.00")
	l.Item.IsUsed = true

	added, removed := l.Toggle(time.Now())
	if added != nil || len(removed) != 0 {
		t.Fatalf("Toggle() = (%v, %v), want no ledger changes", added, removed)
	}
	if l.Item.IsUsed {
		t.Error("item still marked used")
	}
	if !l.CurrentValue().Equal(dec("30.00")) {
		t.Errorf("CurrentValue() = %s, want 30.00", l.CurrentValue())
	}
}
