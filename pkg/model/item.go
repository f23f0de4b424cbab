package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeVoucher     = "voucher"
	TypeGiftCard    = "giftcard"
	TypeCoupon      = "coupon"
	TypeLoyaltyCard = "loyaltycard"

	ValueMoney      = "money"
	ValuePercentage = "percentage"
	ValueMultiplier = "multiplier"
)

// DefaultExpiryYears is applied when an item is submitted without expiry date,
// so that such items effectively never show up in expiry reminders.
const DefaultExpiryYears = 50

var (
	itemTypes  = map[string]bool{TypeVoucher: true, TypeGiftCard: true, TypeCoupon: true, TypeLoyaltyCard: true}
	valueTypes = map[string]bool{ValueMoney: true, ValuePercentage: true, ValueMultiplier: true}

	percentageMax = decimal.NewFromInt(100)
	multiplierMin = decimal.NewFromInt(1)
)

type Item struct {
	Base
	UserID      int    `json:"user_id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	RedeemCode  string `json:"redeem_code"`
	Pin         string `json:"pin,omitempty"`
	Description string `json:"description,omitempty"`

	Value     decimal.Decimal `json:"value"`
	ValueType string          `json:"value_type"`

	IssueDate  time.Time `json:"issue_date"`
	ExpiryDate time.Time `json:"expiry_date"`

	IsUsed             bool `json:"is_used"`
	UpcomingNoticeSent bool `json:"upcoming_notice_sent"`
	FinalNoticeSent    bool `json:"final_notice_sent"`

	// Base64-encoded PNG of the redeem code (EAN-13 barcode or QR code).
	CodeImage string `json:"code_image,omitempty"`
}

// ItemWithValue is a list row carrying the derived current value.
type ItemWithValue struct {
	Item
	CurrentValue decimal.Decimal `json:"current_value"`
}

// Normalize fills defaults for fields the user may omit.
func (i *Item) Normalize(now time.Time) {
	if i.ValueType == "" {
		i.ValueType = ValueMoney
	}
	if i.IssueDate.IsZero() {
		i.IssueDate = now
	}
	if i.ExpiryDate.IsZero() {
		i.ExpiryDate = now.AddDate(DefaultExpiryYears, 0, 0)
	}
}

// Validate checks the item's type, value type and value range.
func (i *Item) Validate() error {
	if !itemTypes[i.Type] {
		return ErrUnknownItemType
	}
	if !valueTypes[i.ValueType] {
		return ErrUnknownValueType
	}

	if i.Type == TypeLoyaltyCard {
		if !i.Value.IsZero() {
			return ErrLoyaltyCardValue
		}
		return nil
	}

	if i.Type == TypeCoupon {
		switch i.ValueType {
		case ValuePercentage:
			if i.Value.IsNegative() || i.Value.GreaterThan(percentageMax) {
				return ErrPercentageRange
			}
		case ValueMultiplier:
			if i.Value.LessThan(multiplierMin) {
				return ErrMultiplierRange
			}
		default:
			if i.Value.IsNegative() {
				return ErrNegativeValue
			}
		}
		return nil
	}

	if i.Value.IsNegative() {
		return ErrNegativeValue
	}

	return nil
}

// Expired reports whether the item's expiry date has passed.
func (i *Item) Expired(now time.Time) bool {
	return i.ExpiryDate.Before(dateOf(now))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
