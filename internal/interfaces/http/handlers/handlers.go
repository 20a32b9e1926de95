package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/entity"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// Catalog is the cache surface the handlers depend on. Satisfied by
// cache.CatalogCache in production.
type Catalog interface {
	GetPackages(ctx context.Context) ([]entity.Package, bool)
	SetPackages(ctx context.Context, packages []entity.Package) error
	IncrementMembers(ctx context.Context) (int64, error)
	MemberCount(ctx context.Context) (int64, error)
}

// rawPayload wraps an upstream body for verbatim passthrough. Empty or
// non-JSON bodies become a null data field instead of breaking the render.
func rawPayload(body []byte) interface{} {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

// forwardError translates an upstream call failure into the client-facing
// error shape: upstream rejections mirror the upstream's status code with a
// best-effort message, transport and unexpected failures become a generic
// 500. The underlying error is only ever logged server-side.
func forwardError(c *gin.Context, err error) {
	if upstream.IsTransport(err) {
		// Unreachable upstream is the one failure worth paging on.
		logging.CaptureError(err, "upstream unreachable",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString("request_id")),
		)
		response.InternalError(c, upstream.ErrorMessage(err))
		return
	}

	logging.GetLogger(c).Error("upstream call failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	response.UpstreamError(c, upstream.ErrorStatus(err), upstream.ErrorMessage(err))
}
