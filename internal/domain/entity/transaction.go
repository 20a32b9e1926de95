package entity

import "time"

type TransactionStatus string

const (
	TransactionStatusSuccess    TransactionStatus = "SUCCESS"
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusCancelled  TransactionStatus = "CANCELLED"
	TransactionStatusChargeback TransactionStatus = "CHARGEBACK"
)

// IsTerminal returns true once the transaction can no longer change state.
// Clients poll the latest transaction until this holds.
func (s TransactionStatus) IsTerminal() bool {
	return s != TransactionStatusPending && s != ""
}

// Transaction is an upstream-owned payment record. The gateway only reads
// and paginates; records are immutable once created upstream.
type Transaction struct {
	PayherePayID  string            `json:"payhere_pay_id"`
	Status        TransactionStatus `json:"status"`
	Amount        float64           `json:"amount,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	SatoshiAmount int64             `json:"satoshi_amount,omitempty"`
	BTCPrice      float64           `json:"btc_price,omitempty"`
	Settled       bool              `json:"settled,omitempty"`
	CreatedAt     *time.Time        `json:"created_at,omitempty"`
}

// IsSuccessful returns true if the payment went through
func (t *Transaction) IsSuccessful() bool {
	return t.Status == TransactionStatusSuccess
}
