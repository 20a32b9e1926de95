package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/middleware"
	"github.com/bitcoindeepa/miniapp-gateway/internal/application/state"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// SubscriptionHandler handles subscription endpoints
type SubscriptionHandler struct {
	client *upstream.Client
	store  *state.Store
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(client *upstream.Client, store *state.Store) *SubscriptionHandler {
	return &SubscriptionHandler{
		client: client,
		store:  store,
	}
}

// Current returns the caller's active subscription. An upstream 404 is not an
// error here: it means no active subscription and maps to a 200 with a null
// subscription.
// @Summary Get current subscription
// @Tags subscription
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /subscription/current [get]
func (h *SubscriptionHandler) Current(c *gin.Context) {
	token := middleware.Token(c)

	res, err := h.client.CurrentSubscription(c.Request.Context(), token)
	if err != nil {
		if upstream.IsNotFound(err) {
			h.store.Dispatch(state.SetSubscription{Subscription: nil})
			response.OK(c, "No active subscription found", gin.H{"subscription": nil})
			return
		}
		forwardError(c, err)
		return
	}

	var payload struct {
		Subscription *entity.Subscription `json:"subscription"`
	}
	if err := json.Unmarshal(res.Body, &payload); err != nil || payload.Subscription == nil {
		// Some upstream builds return the subscription object bare.
		var bare entity.Subscription
		if err := json.Unmarshal(res.Body, &bare); err == nil && bare.ID != "" {
			payload.Subscription = &bare
		}
	}

	if payload.Subscription == nil {
		h.store.Dispatch(state.SetSubscription{Subscription: nil})
		response.OK(c, "No active subscription found", gin.H{"subscription": nil})
		return
	}

	h.store.Dispatch(state.SetSubscription{Subscription: payload.Subscription})
	response.OK(c, "Subscription fetched successfully", gin.H{"subscription": payload.Subscription})
}

// Cancel cancels the caller's subscription, passing the upstream's status
// and body through.
// @Summary Cancel subscription
// @Tags subscription
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /subscription/cancel [post]
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	token := middleware.Token(c)

	res, err := h.client.CancelSubscription(c.Request.Context(), token)
	if err != nil {
		forwardError(c, err)
		return
	}

	h.store.Dispatch(state.SetSubscription{Subscription: nil})

	response.Send(c, res.Status, "Subscription cancelled successfully", rawPayload(res.Body))
}

// PayhereLinkRequest is the payment link request body
type PayhereLinkRequest struct {
	PackageID string `json:"package_id" binding:"required"`
}

// PayhereLink asks the upstream to generate a PayHere checkout link for a
// package. Link generation itself is entirely the upstream's business.
func (h *SubscriptionHandler) PayhereLink(c *gin.Context) {
	var req PayhereLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "package_id is required")
		return
	}

	token := middleware.Token(c)
	res, err := h.client.PayhereLink(c.Request.Context(), token, req.PackageID)
	if err != nil {
		forwardError(c, err)
		return
	}

	response.Send(c, res.Status, "Payment link generated successfully", rawPayload(res.Body))
}
