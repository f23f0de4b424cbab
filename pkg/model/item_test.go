package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestItemValidate(t *testing.T) {
	tests := []struct {
		name      string
		itemType  string
		valueType string
		value     string
		want      error
	}{
		{"voucher positive", TypeVoucher, ValueMoney, "25.00", nil},
		{"voucher zero", TypeVoucher, ValueMoney, "0", nil},
		{"voucher negative", TypeVoucher, ValueMoney, "-1", ErrNegativeValue},
		{"giftcard negative", TypeGiftCard, ValueMoney, "-0.01", ErrNegativeValue},

		{"coupon money negative", TypeCoupon, ValueMoney, "-1", ErrNegativeValue},
		{"coupon money zero", TypeCoupon, ValueMoney, "0", nil},
		{"coupon percentage too high", TypeCoupon, ValuePercentage, "101", ErrPercentageRange},
		{"coupon percentage max", TypeCoupon, ValuePercentage, "100", nil},
		{"coupon percentage negative", TypeCoupon, ValuePercentage, "-5", ErrPercentageRange},
		{"coupon multiplier below one", TypeCoupon, ValueMultiplier, "0.5", ErrMultiplierRange},
		{"coupon multiplier one", TypeCoupon, ValueMultiplier, "1", nil},

		{"loyalty card zero", TypeLoyaltyCard, ValueMoney, "0", nil},
		{"loyalty card nonzero", TypeLoyaltyCard, ValueMoney, "10", ErrLoyaltyCardValue},
		{"loyalty card negative", TypeLoyaltyCard, ValueMoney, "-10", ErrLoyaltyCardValue},

		{"unknown type", "ticket", ValueMoney, "1", ErrUnknownItemType},
		{"unknown value type", TypeVoucher, "points", "1", ErrUnknownValueType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{Type: tt.itemType, ValueType: tt.valueType, Value: dec(tt.value)}
			if err := item.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestItemNormalize(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var item Item
	item.Normalize(now)

	if item.ValueType != ValueMoney {
		t.Errorf("ValueType = %q, want %q", item.ValueType, ValueMoney)
	}
	if !item.IssueDate.Equal(now) {
		t.Errorf("IssueDate = %v, want %v", item.IssueDate, now)
	}
	if want := now.AddDate(DefaultExpiryYears, 0, 0); !item.ExpiryDate.Equal(want) {
		t.Errorf("ExpiryDate = %v, want %v", item.ExpiryDate, want)
	}

	explicit := Item{ValueType: ValuePercentage, ExpiryDate: now.AddDate(0, 1, 0)}
	explicit.Normalize(now)
	if explicit.ValueType != ValuePercentage {
		t.Errorf("Normalize overwrote ValueType: %q", explicit.ValueType)
	}
	if !explicit.ExpiryDate.Equal(now.AddDate(0, 1, 0)) {
		t.Errorf("Normalize overwrote ExpiryDate: %v", explicit.ExpiryDate)
	}
}

func TestItemExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{"yesterday", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), true},
		{"today", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"tomorrow", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{ExpiryDate: tt.expiry}
			if got := item.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserProfileDestinations(t *testing.T) {
	tests := []struct {
		urls string
		want int
	}{
		{"", 0},
		{" , ,", 0},
		{"tgram://token/chat", 1},
		{"tgram://token/chat, discord://token@id", 2},
	}

	for _, tt := range tests {
		p := UserProfile{NotifyURLs: tt.urls}
		if got := p.Destinations(); len(got) != tt.want {
			t.Errorf("Destinations(%q) = %v, want %d entries", tt.urls, got, tt.want)
		}
	}
}
