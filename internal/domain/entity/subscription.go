package entity

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// IsActive returns true if the status is active
func (s SubscriptionStatus) IsActive() bool {
	return s == SubscriptionStatusActive
}

// Subscription is the upstream-owned recurring purchase record
type Subscription struct {
	ID          string             `json:"id"`
	PackageID   string             `json:"package_id,omitempty"`
	PackageName string             `json:"package_name,omitempty"`
	Status      SubscriptionStatus `json:"status"`
	Amount      float64            `json:"amount,omitempty"`
	Currency    string             `json:"currency,omitempty"`
	NextBilling *time.Time         `json:"next_billing_date,omitempty"`
	CreatedAt   *time.Time         `json:"created_at,omitempty"`
}

// DCASummary is the aggregated savings view returned by the upstream
// transaction service. Field names follow the upstream wire format.
type DCASummary struct {
	DCA          DCABreakdown `json:"dca"`
	TotalBalance float64      `json:"total_balance"`
	TotalLKR     float64      `json:"total_lkr"`
	Currency     string       `json:"currency"`
	Change24Hr   float64      `json:"24_hr_change"`
}

// DCABreakdown carries the per-plan accumulation figures
type DCABreakdown struct {
	Balance     float64 `json:"balance"`
	Spent       float64 `json:"spent"`
	AvgBTCPrice float64 `json:"avg_btc_price"`
}
