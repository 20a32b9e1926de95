package handlers

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/middleware"
	"github.com/bitcoindeepa/miniapp-gateway/internal/application/state"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// UserHandler handles user registration and lookup
type UserHandler struct {
	client  *upstream.Client
	catalog Catalog
	store   *state.Store
}

// NewUserHandler creates a new user handler
func NewUserHandler(client *upstream.Client, catalog Catalog, store *state.Store) *UserHandler {
	return &UserHandler{
		client:  client,
		catalog: catalog,
		store:   store,
	}
}

// Exists checks whether a Telegram user is already registered
// @Summary Check user existence
// @Tags user
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /user/exists/{telegramId} [get]
func (h *UserHandler) Exists(c *gin.Context) {
	telegramID := c.Param("telegramId")
	if telegramID == "" {
		response.BadRequest(c, "telegramId is required")
		return
	}

	res, err := h.client.UserExists(c.Request.Context(), telegramID)
	if err != nil {
		forwardError(c, err)
		return
	}

	response.OK(c, "User lookup completed", rawPayload(res.Body))
}

// Create registers a new user, forwarding the registration fields verbatim.
// On success the community member counter is bumped for the referral screen.
func (h *UserHandler) Create(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		response.BadRequest(c, "Request body is required")
		return
	}

	token := middleware.Token(c)
	res, err := h.client.CreateUser(c.Request.Context(), token, json.RawMessage(body))
	if err != nil {
		forwardError(c, err)
		return
	}

	if count, cntErr := h.catalog.IncrementMembers(c.Request.Context()); cntErr == nil {
		h.store.Dispatch(state.SetMemberCount{Count: count})
	} else {
		logging.GetLogger(c).Warn("failed to bump member counter", zap.Error(cntErr))
	}

	response.Send(c, res.Status, "User created successfully", rawPayload(res.Body))
}
