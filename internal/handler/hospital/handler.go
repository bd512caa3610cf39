package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/internal/handler"
	"github.com/jwalitptl/dravail-api/internal/middleware"
	"github.com/jwalitptl/dravail-api/internal/model"
	hospitalService "github.com/jwalitptl/dravail-api/internal/service/hospital"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/httputil"
)

type Handler struct {
	service *hospitalService.Service
}

func NewHandler(service *hospitalService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.GET("", auth.OptionalAuth(), h.ListHospitals)
		hospitals.GET("/mine", auth.Authenticate(), h.MyHospitals)
		hospitals.GET("/:id", auth.OptionalAuth(), h.GetHospital)
		hospitals.POST("", auth.Authenticate(), h.CreateHospital)
		hospitals.PUT("/:id", auth.Authenticate(), h.UpdateHospital)
		hospitals.POST("/:id/decision", auth.Authenticate(), h.DecideHospital)
		hospitals.DELETE("/:id", auth.Authenticate(), h.DeleteHospital)
	}
}

// RegisterAdminRoutes mounts the review queue on an authenticated group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/pending/hospitals", h.PendingHospitals)
}

func (h *Handler) ListHospitals(c *gin.Context) {
	var filter model.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(errors.BadRequest("invalid query", err))
		return
	}

	hospitals, total, f, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c), filter)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithPagination(c, hospitals, f.Page, f.PageSize, total)
}

func (h *Handler) MyHospitals(c *gin.Context) {
	hospitals, err := h.service.Mine(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, hospitals)
}

func (h *Handler) GetHospital(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	hospital, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, hospital)
}

func (h *Handler) CreateHospital(c *gin.Context) {
	var hospital model.Hospital
	if err := handler.BindJSON(c, &hospital); err != nil {
		c.Error(err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &hospital)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) UpdateHospital(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var hospital model.Hospital
	if err := handler.BindJSON(c, &hospital); err != nil {
		c.Error(err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, middleware.ActorFrom(c), &hospital)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DecideHospital(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req handler.DecisionRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	decision, err := h.service.Decide(c.Request.Context(), id, middleware.ActorFrom(c), *req.Approve, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, decision)
}

func (h *Handler) DeleteHospital(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	version, err := handler.QueryVersion(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.ActorFrom(c), version); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PendingHospitals(c *gin.Context) {
	var page model.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		c.Error(errors.BadRequest("invalid query", err))
		return
	}

	hospitals, total, f, err := h.service.Pending(c.Request.Context(), middleware.ActorFrom(c), page)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithPagination(c, hospitals, f.Page, f.PageSize, total)
}
