package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/pkg/httputil"
)

// Handler serves the fixed enumerations used by listing forms.
type Handler struct {
	catalog model.Catalog
}

func NewHandler() *Handler {
	return &Handler{catalog: model.NewCatalog()}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/catalog", h.GetCatalog)
}

func (h *Handler) GetCatalog(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	httputil.RespondWithSuccess(c, h.catalog)
}
