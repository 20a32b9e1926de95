package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/middleware"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// KYCHandler handles identity verification endpoints
type KYCHandler struct {
	client *upstream.Client
}

// NewKYCHandler creates a new KYC handler
func NewKYCHandler(client *upstream.Client) *KYCHandler {
	return &KYCHandler{client: client}
}

// Initiate starts a verification session upstream
func (h *KYCHandler) Initiate(c *gin.Context) {
	token := middleware.Token(c)

	res, err := h.client.InitiateKYC(c.Request.Context(), token)
	if err != nil {
		forwardError(c, err)
		return
	}

	response.Send(c, res.Status, "KYC verification initiated", kycPayload(res.Body))
}

// Status returns the caller's verification state
func (h *KYCHandler) Status(c *gin.Context) {
	token := middleware.Token(c)

	res, err := h.client.KYCStatus(c.Request.Context(), token)
	if err != nil {
		forwardError(c, err)
		return
	}

	response.OK(c, "KYC status fetched successfully", kycPayload(res.Body))
}

// kycPayload parses the upstream verification payload into its typed shape,
// falling back to verbatim passthrough for unknown encodings.
func kycPayload(body []byte) interface{} {
	var kycState entity.KYCState
	if err := json.Unmarshal(body, &kycState); err == nil && kycState.Status != "" {
		return kycState
	}
	return rawPayload(body)
}
