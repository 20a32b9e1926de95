package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/normalize"
)

func TestResolveTransactions(t *testing.T) {
	t.Run("empty shapes all normalize to empty list", func(t *testing.T) {
		shapes := map[string]string{
			"bare array":     `[]`,
			"wrapped":        `{"transactions": []}`,
			"doubly wrapped": `{"transactions": {"transactions": []}}`,
		}

		for name, raw := range shapes {
			t.Run(name, func(t *testing.T) {
				list := normalize.ResolveTransactions([]byte(raw), 1, 10)
				assert.Empty(t, list.Transactions)
				assert.Equal(t, normalize.MsgNoTransactions, list.Message())
			})
		}
	})

	t.Run("bare array preserves order", func(t *testing.T) {
		raw := `[{"payhere_pay_id":"p1","status":"SUCCESS"},{"payhere_pay_id":"p2","status":"PENDING"}]`

		list := normalize.ResolveTransactions([]byte(raw), 1, 10)
		require.Len(t, list.Transactions, 2)
		assert.Equal(t, "p1", list.Transactions[0].PayherePayID)
		assert.Equal(t, "p2", list.Transactions[1].PayherePayID)
		assert.Equal(t, normalize.MsgTransactionsFetched, list.Message())
	})

	t.Run("doubly wrapped echoes metadata and order", func(t *testing.T) {
		raw := `{"transactions": {"transactions": [
			{"payhere_pay_id":"tx1","status":"SUCCESS"},
			{"payhere_pay_id":"tx2","status":"SUCCESS"}
		], "total_count": 2, "has_more": false}}`

		list := normalize.ResolveTransactions([]byte(raw), 1, 10)
		require.Len(t, list.Transactions, 2)
		assert.Equal(t, "tx1", list.Transactions[0].PayherePayID)
		assert.Equal(t, "tx2", list.Transactions[1].PayherePayID)
		assert.Equal(t, 2, list.Pagination.TotalCount)
		assert.False(t, list.Pagination.HasMore)
	})

	t.Run("pagination passes through verbatim when present", func(t *testing.T) {
		raw := `{"transactions": [], "total_count": 42, "current_page": 3, "total_pages": 5, "has_more": true}`

		list := normalize.ResolveTransactions([]byte(raw), 1, 10)
		assert.Equal(t, 42, list.Pagination.TotalCount)
		assert.Equal(t, 3, list.Pagination.CurrentPage)
		assert.Equal(t, 5, list.Pagination.TotalPages)
		assert.True(t, list.Pagination.HasMore)
	})

	t.Run("missing total_pages is derived from total_count", func(t *testing.T) {
		raw := `{"transactions": [], "total_count": 21}`

		list := normalize.ResolveTransactions([]byte(raw), 1, 10)
		assert.Equal(t, 21, list.Pagination.TotalCount)
		assert.Equal(t, 3, list.Pagination.TotalPages)
		assert.False(t, list.Pagination.HasMore)
	})

	t.Run("missing current_page echoes the requested page", func(t *testing.T) {
		raw := `{"transactions": [{"payhere_pay_id":"p1","status":"SUCCESS"}], "total_count": 30}`

		list := normalize.ResolveTransactions([]byte(raw), 3, 10)
		assert.Equal(t, 3, list.Pagination.CurrentPage)

		// An upstream-reported page still wins over the requested one.
		withPage := `{"transactions": [], "current_page": 7}`
		assert.Equal(t, 7, normalize.ResolveTransactions([]byte(withPage), 3, 10).Pagination.CurrentPage)
	})

	t.Run("nil and null bodies resolve to empty", func(t *testing.T) {
		assert.Empty(t, normalize.ResolveTransactions(nil, 1, 10).Transactions)
		assert.Empty(t, normalize.ResolveTransactions([]byte("null"), 1, 10).Transactions)
	})

	t.Run("garbage resolves to empty, not panic", func(t *testing.T) {
		list := normalize.ResolveTransactions([]byte(`"what"`), 1, 10)
		assert.Empty(t, list.Transactions)
	})

	t.Run("idempotent for identical input", func(t *testing.T) {
		raw := []byte(`{"transactions": [{"payhere_pay_id":"x","status":"PENDING"}], "total_count": 1}`)

		first := normalize.ResolveTransactions(raw, 1, 10)
		second := normalize.ResolveTransactions(raw, 1, 10)
		assert.Equal(t, first, second)
	})
}

func TestResolveLatest(t *testing.T) {
	t.Run("direct object wins", func(t *testing.T) {
		raw := `{"payhere_pay_id":"direct","status":"SUCCESS"}`

		txs := normalize.ResolveLatest([]byte(raw))
		require.Len(t, txs, 1)
		assert.Equal(t, "direct", txs[0].PayherePayID)
	})

	t.Run("list yields first element only", func(t *testing.T) {
		raw := `[{"payhere_pay_id":"tx1","status":"SUCCESS"},{"payhere_pay_id":"tx2","status":"FAILED"}]`

		txs := normalize.ResolveLatest([]byte(raw))
		require.Len(t, txs, 1)
		assert.Equal(t, "tx1", txs[0].PayherePayID)
	})

	t.Run("wrapped list yields first element", func(t *testing.T) {
		raw := `{"transactions":[{"payhere_pay_id":"w1","status":"PENDING"}]}`

		txs := normalize.ResolveLatest([]byte(raw))
		require.Len(t, txs, 1)
		assert.Equal(t, "w1", txs[0].PayherePayID)
	})

	t.Run("empty body yields empty", func(t *testing.T) {
		assert.Empty(t, normalize.ResolveLatest([]byte(`[]`)))
		assert.Empty(t, normalize.ResolveLatest(nil))
	})
}

func TestTransactionStatusTerminal(t *testing.T) {
	assert.True(t, entity.TransactionStatusSuccess.IsTerminal())
	assert.True(t, entity.TransactionStatusFailed.IsTerminal())
	assert.True(t, entity.TransactionStatusCancelled.IsTerminal())
	assert.True(t, entity.TransactionStatusChargeback.IsTerminal())
	assert.False(t, entity.TransactionStatusPending.IsTerminal())
}
