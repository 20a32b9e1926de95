package entity

type KYCStatus string

const (
	KYCStatusNotStarted KYCStatus = "not_started"
	KYCStatusPending    KYCStatus = "pending"
	KYCStatusVerified   KYCStatus = "verified"
	KYCStatusRejected   KYCStatus = "rejected"
)

// KYCState is the upstream verification state, optionally carrying the
// hosted verification URL while a session is open.
type KYCState struct {
	Status KYCStatus `json:"status"`
	URL    string    `json:"url,omitempty"`
}
