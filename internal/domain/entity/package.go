package entity

// Package is a catalog entry owned by the upstream API. Read-only from the
// gateway's perspective.
type Package struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Type     string  `json:"type"`
	Popular  bool    `json:"popular,omitempty"`
}
