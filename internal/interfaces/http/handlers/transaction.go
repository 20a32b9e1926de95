package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitcoindeepa/miniapp-gateway/internal/application/middleware"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/normalize"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// TransactionHandler handles transaction read endpoints
type TransactionHandler struct {
	client *upstream.Client
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(client *upstream.Client) *TransactionHandler {
	return &TransactionHandler{client: client}
}

// DCASummary returns the caller's aggregated savings view
// @Summary Get DCA summary
// @Tags transaction
// @Produce json
// @Security Bearer
// @Success 200 {object} response.SuccessResponse{data=entity.DCASummary}
// @Failure 401 {object} response.ErrorResponse
// @Router /transaction/dca-summary [get]
func (h *TransactionHandler) DCASummary(c *gin.Context) {
	token := middleware.Token(c)

	res, err := h.client.DCASummary(c.Request.Context(), token)
	if err != nil {
		forwardError(c, err)
		return
	}

	var summary entity.DCASummary
	if err := json.Unmarshal(res.Body, &summary); err != nil {
		// Unknown upstream shape, pass it through untouched.
		response.OK(c, "DCA summary fetched successfully", rawPayload(res.Body))
		return
	}
	response.OK(c, "DCA summary fetched successfully", summary)
}

// Latest returns the caller's most recent transaction. Polled by the client
// after checkout until a terminal status shows up, so an upstream 404 is an
// empty success rather than an error.
func (h *TransactionHandler) Latest(c *gin.Context) {
	token := middleware.Token(c)

	res, err := h.client.LatestTransactions(c.Request.Context(), token)
	if err != nil {
		if upstream.IsNotFound(err) {
			response.OK(c, normalize.MsgNoTransactions, gin.H{"transactions": []entity.Transaction{}})
			return
		}
		forwardError(c, err)
		return
	}

	transactions := normalize.ResolveLatest(res.Body)
	message := normalize.MsgTransactionsFetched
	if len(transactions) == 0 {
		message = normalize.MsgNoTransactions
	}
	response.OK(c, message, gin.H{"transactions": transactions})
}

// List returns a page of the caller's transaction history in the canonical
// list shape, whatever encoding the upstream picked.
func (h *TransactionHandler) List(c *gin.Context) {
	token := middleware.Token(c)
	page := c.Query("page")
	limit := c.Query("limit")

	pageNum := 1
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		pageNum = n
	}
	pageSize := normalize.DefaultPageSize
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		pageSize = n
	}

	res, err := h.client.ListTransactions(c.Request.Context(), token, page, limit)
	if err != nil {
		if upstream.IsNotFound(err) {
			empty := normalize.ResolveTransactions(nil, pageNum, pageSize)
			response.OK(c, empty.Message(), empty)
			return
		}
		forwardError(c, err)
		return
	}

	list := normalize.ResolveTransactions(res.Body, pageNum, pageSize)
	response.OK(c, list.Message(), list)
}
