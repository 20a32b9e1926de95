package normalize

import (
	"encoding/json"
	"errors"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
)

// Outcome messages surfaced to the client alongside the data payload.
const (
	MsgNoTransactions      = "No transactions found"
	MsgTransactionsFetched = "Transactions fetched successfully"
)

var errUnrecognizedShape = errors.New("unrecognized transaction payload shape")

// DefaultPageSize is used when deriving total_pages and the upstream did not
// say how large a page is.
const DefaultPageSize = 10

// Pagination is the canonical pagination block echoed to the client.
type Pagination struct {
	TotalCount  int  `json:"total_count"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasMore     bool `json:"has_more"`
}

// TransactionList is the canonical client-facing list shape. Upstream encodes
// transaction collections three different ways; downstream code only ever
// sees this one.
type TransactionList struct {
	Transactions []entity.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}

// Message returns the human-readable outcome for this list.
func (l TransactionList) Message() string {
	if len(l.Transactions) == 0 {
		return MsgNoTransactions
	}
	return MsgTransactionsFetched
}

// pageMeta mirrors the upstream pagination fields, all optional.
type pageMeta struct {
	TotalCount  *int  `json:"total_count"`
	CurrentPage *int  `json:"current_page"`
	TotalPages  *int  `json:"total_pages"`
	HasMore     *bool `json:"has_more"`
}

// wrappedShape is the single-wrapped upstream encoding: a transactions field
// (which may itself be an array or a nested wrapper) plus optional metadata.
type wrappedShape struct {
	Transactions json.RawMessage `json:"transactions"`
	pageMeta
}

// ResolveTransactions parses a raw upstream body into the canonical list.
// Shapes are tried in priority order: bare array, object with a
// .transactions array, object with a doubly-nested .transactions.transactions
// array. Anything else resolves to an empty list. page is the page the client
// asked for; it fills current_page only when the upstream did not report one.
func ResolveTransactions(raw []byte, page, pageSize int) TransactionList {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	txs, meta, err := parseShapes(raw)
	if err != nil {
		txs = nil
		meta = pageMeta{}
	}
	if txs == nil {
		txs = []entity.Transaction{}
	}

	return TransactionList{
		Transactions: txs,
		Pagination:   meta.canonical(len(txs), page, pageSize),
	}
}

func parseShapes(raw []byte) ([]entity.Transaction, pageMeta, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, pageMeta{}, nil
	}

	// Shape (a): bare array.
	var bare []entity.Transaction
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, pageMeta{}, nil
	}

	var outer wrappedShape
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, pageMeta{}, err
	}
	if len(outer.Transactions) == 0 || string(outer.Transactions) == "null" {
		return nil, outer.pageMeta, nil
	}

	// Shape (b): .transactions is the array.
	var inner []entity.Transaction
	if err := json.Unmarshal(outer.Transactions, &inner); err == nil {
		return inner, outer.pageMeta, nil
	}

	// Shape (c): .transactions wraps the array once more, carrying the
	// authoritative pagination metadata.
	var nested wrappedShape
	if err := json.Unmarshal(outer.Transactions, &nested); err != nil {
		return nil, pageMeta{}, err
	}
	var innermost []entity.Transaction
	if len(nested.Transactions) > 0 && string(nested.Transactions) != "null" {
		if err := json.Unmarshal(nested.Transactions, &innermost); err != nil {
			return nil, pageMeta{}, errUnrecognizedShape
		}
	}
	return innermost, nested.pageMeta, nil
}

// canonical fills the canonical pagination block: upstream values pass
// through verbatim, missing ones are derived.
func (m pageMeta) canonical(listLen, page, pageSize int) Pagination {
	p := Pagination{CurrentPage: page}

	if m.TotalCount != nil {
		p.TotalCount = *m.TotalCount
	} else {
		p.TotalCount = listLen
	}
	if m.CurrentPage != nil {
		p.CurrentPage = *m.CurrentPage
	}
	if m.TotalPages != nil {
		p.TotalPages = *m.TotalPages
	} else {
		p.TotalPages = (p.TotalCount + pageSize - 1) / pageSize
	}
	if m.HasMore != nil {
		p.HasMore = *m.HasMore
	}
	return p
}

// ResolveLatest determines the most recent transaction from an ambiguous
// upstream body. A direct single object carrying payhere_pay_id wins; else
// the first element of the resolved list (upstream returns newest-first, the
// normalizer does not re-sort). Empty result means no transactions yet.
func ResolveLatest(raw []byte) []entity.Transaction {
	var direct entity.Transaction
	if err := json.Unmarshal(raw, &direct); err == nil && direct.PayherePayID != "" {
		return []entity.Transaction{direct}
	}

	list := ResolveTransactions(raw, 1, DefaultPageSize)
	if len(list.Transactions) == 0 {
		return []entity.Transaction{}
	}
	return list.Transactions[:1]
}
