package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats is the per-user dashboard summary.
type Stats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Used      int `json:"used"`
	Expired   int `json:"expired"`

	Vouchers     int `json:"vouchers"`
	GiftCards    int `json:"giftcards"`
	Coupons      int `json:"coupons"`
	LoyaltyCards int `json:"loyaltycards"`

	// TotalValue sums current values of available money items,
	// loyalty cards excluded.
	TotalValue decimal.Decimal `json:"total_value"`
}

// GlobalStats is the instance-wide summary served to API token holders.
type GlobalStats struct {
	Items   int `json:"items"`
	Users   int `json:"users"`
	Issuers int `json:"issuers"`
}

// AppSettings is the single-row application configuration. The API token
// authenticates requests to the global stats endpoint.
type AppSettings struct {
	APIToken  string    `json:"api_token"`
	UpdatedAt time.Time `json:"updated_at"`
}
