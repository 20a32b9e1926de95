package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/state"
	"github.com/bitcoindeepa/miniapp-gateway/internal/application/telegram"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// AuthHandler handles the Telegram auth bootstrap
type AuthHandler struct {
	client      *upstream.Client
	store       *state.Store
	devFallback bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *upstream.Client, store *state.Store, devFallback bool) *AuthHandler {
	return &AuthHandler{
		client:      client,
		store:       store,
		devFallback: devFallback,
	}
}

// TelegramAuthRequest is the auth bootstrap request body
type TelegramAuthRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// TelegramAuth exchanges a Telegram init payload for an upstream token.
// This is the one route with graceful degradation: when the upstream is
// unreachable and the dev fallback is enabled, a local development token is
// synthesized from the init payload instead of surfacing the failure.
// @Summary Authenticate via Telegram init data
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TelegramAuthRequest true "Auth request"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /auth/telegram [post]
func (h *AuthHandler) TelegramAuth(c *gin.Context) {
	var req TelegramAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "initData is required")
		return
	}

	res, err := h.client.AuthenticateTelegram(c.Request.Context(), req.InitData)
	if err != nil {
		if upstream.IsTransport(err) && h.devFallback {
			h.offlineAuth(c, req.InitData)
			return
		}
		forwardError(c, err)
		return
	}

	if user, parseErr := telegram.ParseInitData(req.InitData); parseErr == nil {
		h.store.Dispatch(state.SetUser{User: user})
	}

	response.Send(c, res.Status, "Authenticated successfully", rawPayload(res.Body))
}

// offlineAuth synthesizes a development token directly from the init payload
func (h *AuthHandler) offlineAuth(c *gin.Context, initData string) {
	user, err := telegram.ParseInitData(initData)
	if err != nil {
		response.BadRequest(c, "Invalid initData payload")
		return
	}

	token := telegram.DevToken(user.ID)
	h.store.Dispatch(state.SetUser{User: user})

	logging.GetLogger(c).Warn("upstream unreachable, issued development token",
		zap.Int64("telegram_id", user.ID),
	)

	response.OK(c, "Authenticated in offline mode", gin.H{
		"token": token,
		"user":  user,
	})
}
