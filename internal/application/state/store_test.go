package state_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/state"
	"github.com/bitcoindeepa/miniapp-gateway/internal/application/telegram"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
)

func TestStore(t *testing.T) {
	t.Run("starts empty", func(t *testing.T) {
		s := state.New()

		snap := s.Snapshot()
		assert.Nil(t, snap.User)
		assert.False(t, snap.Authenticated)
		assert.Nil(t, snap.Subscription)
		assert.Zero(t, snap.MemberCount)
	})

	t.Run("SetUser marks authenticated", func(t *testing.T) {
		s := state.New()
		s.Dispatch(state.SetUser{User: &telegram.User{ID: 123, Username: "abc"}})

		snap := s.Snapshot()
		require.NotNil(t, snap.User)
		assert.Equal(t, int64(123), snap.User.ID)
		assert.True(t, snap.Authenticated)
	})

	t.Run("ClearUser drops derived state", func(t *testing.T) {
		s := state.New()
		s.Dispatch(
			state.SetUser{User: &telegram.User{ID: 1}},
			state.SetSubscription{Subscription: &entity.Subscription{ID: "sub_1"}},
		)
		s.Dispatch(state.ClearUser{})

		snap := s.Snapshot()
		assert.Nil(t, snap.User)
		assert.False(t, snap.Authenticated)
		assert.Nil(t, snap.Subscription)
	})

	t.Run("actions apply in dispatch order", func(t *testing.T) {
		s := state.New()
		s.Dispatch(
			state.SetMemberCount{Count: 10},
			state.SetMemberCount{Count: 20},
		)

		assert.Equal(t, int64(20), s.Snapshot().MemberCount)
	})

	t.Run("concurrent dispatch is safe", func(t *testing.T) {
		s := state.New()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			n := int64(i + 1)
			go func() {
				defer wg.Done()
				s.Dispatch(state.SetMemberCount{Count: n})
			}()
		}
		wg.Wait()

		// Whichever dispatch landed last, the snapshot is one of the
		// dispatched values, never a torn read.
		got := s.Snapshot().MemberCount
		assert.GreaterOrEqual(t, got, int64(1))
		assert.LessOrEqual(t, got, int64(50))
	})
}
