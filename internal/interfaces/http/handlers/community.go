package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/state"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// CommunityHandler serves the community stats panel
type CommunityHandler struct {
	catalog Catalog
	store   *state.Store
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(catalog Catalog, store *state.Store) *CommunityHandler {
	return &CommunityHandler{
		catalog: catalog,
		store:   store,
	}
}

// Stats returns the community member counter. Redis is authoritative; when it
// is unreachable the last snapshotted value is served instead of failing the
// panel render.
// @Summary Get community stats
// @Tags community
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /community/stats [get]
func (h *CommunityHandler) Stats(c *gin.Context) {
	count, err := h.catalog.MemberCount(c.Request.Context())
	if err != nil {
		logging.GetLogger(c).Warn("member counter read failed", zap.Error(err))
		count = h.store.Snapshot().MemberCount
	} else {
		h.store.Dispatch(state.SetMemberCount{Count: count})
	}

	response.OK(c, "Community stats fetched successfully", gin.H{
		"member_count": count,
	})
}
