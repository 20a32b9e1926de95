package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/domain/normalize"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/logging"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
	"github.com/bitcoindeepa/miniapp-gateway/internal/interfaces/http/response"
)

// PackagesHandler serves the subscription plan catalog
type PackagesHandler struct {
	client  *upstream.Client
	catalog Catalog
}

// NewPackagesHandler creates a new packages handler
func NewPackagesHandler(client *upstream.Client, catalog Catalog) *PackagesHandler {
	return &PackagesHandler{
		client:  client,
		catalog: catalog,
	}
}

// List returns the package catalog, served from cache when warm
// @Summary List subscription packages
// @Tags package
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=[]entity.Package}
// @Router /package [get]
func (h *PackagesHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if packages, ok := h.catalog.GetPackages(ctx); ok {
		response.OK(c, normalize.PackagesMessage(packages), packages)
		return
	}

	res, err := h.client.ListPackages(ctx)
	if err != nil {
		forwardError(c, err)
		return
	}

	packages := normalize.ResolvePackages(res.Body)
	if err := h.catalog.SetPackages(ctx, packages); err != nil {
		logging.GetLogger(c).Warn("failed to cache catalog", zap.Error(err))
	}

	response.OK(c, normalize.PackagesMessage(packages), packages)
}
