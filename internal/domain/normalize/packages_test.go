package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/normalize"
)

func TestResolvePackages(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		raw := `[{"id":"p1","name":"Weekly","amount":500,"currency":"LKR","type":"weekly"}]`

		packages := normalize.ResolvePackages([]byte(raw))
		require.Len(t, packages, 1)
		assert.Equal(t, "p1", packages[0].ID)
		assert.Equal(t, "Weekly", packages[0].Name)
		assert.Equal(t, 500.0, packages[0].Amount)
		assert.Equal(t, "LKR", packages[0].Currency)
		assert.Equal(t, "weekly", packages[0].Type)
	})

	t.Run("wrapped object", func(t *testing.T) {
		raw := `{"packages":[{"id":"p1","name":"Weekly","amount":500,"currency":"LKR","type":"weekly"},{"id":"p2","name":"Monthly","amount":2000,"currency":"LKR","type":"monthly","popular":true}]}`

		packages := normalize.ResolvePackages([]byte(raw))
		require.Len(t, packages, 2)
		assert.Equal(t, "p2", packages[1].ID)
		assert.True(t, packages[1].Popular)
	})

	t.Run("empty and null", func(t *testing.T) {
		assert.Empty(t, normalize.ResolvePackages(nil))
		assert.Empty(t, normalize.ResolvePackages([]byte("null")))
		assert.Empty(t, normalize.ResolvePackages([]byte(`{"packages":[]}`)))
	})

	t.Run("messages", func(t *testing.T) {
		assert.Equal(t, normalize.MsgNoPackages, normalize.PackagesMessage(nil))
		assert.Equal(t, normalize.MsgPackagesFetched,
			normalize.PackagesMessage(normalize.ResolvePackages([]byte(`[{"id":"p1"}]`))))
	})
}
