package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/internal/handler"
	"github.com/jwalitptl/dravail-api/internal/middleware"
	"github.com/jwalitptl/dravail-api/internal/model"
	doctorService "github.com/jwalitptl/dravail-api/internal/service/doctor"
	"github.com/jwalitptl/dravail-api/pkg/errors"
	"github.com/jwalitptl/dravail-api/pkg/httputil"
)

type Handler struct {
	service *doctorService.Service
}

func NewHandler(service *doctorService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", auth.OptionalAuth(), h.ListDoctors)
		doctors.GET("/mine", auth.Authenticate(), h.MyDoctors)
		doctors.GET("/:id", auth.OptionalAuth(), h.GetDoctor)
		doctors.POST("", auth.Authenticate(), h.CreateDoctor)
		doctors.PUT("/:id", auth.Authenticate(), h.UpdateDoctor)
		doctors.POST("/:id/decision", auth.Authenticate(), h.DecideDoctor)
		doctors.DELETE("/:id", auth.Authenticate(), h.DeleteDoctor)
	}
}

// RegisterAdminRoutes mounts the review queue on an authenticated group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/pending", h.PendingDoctors)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	var filter model.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(errors.BadRequest("invalid query", err))
		return
	}

	doctors, total, f, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c), filter)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithPagination(c, doctors, f.Page, f.PageSize, total)
}

func (h *Handler) MyDoctors(c *gin.Context) {
	doctors, err := h.service.Mine(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	doctor, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, doctor)
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var doctor model.Doctor
	if err := handler.BindJSON(c, &doctor); err != nil {
		c.Error(err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.ActorFrom(c), &doctor)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var doctor model.Doctor
	if err := handler.BindJSON(c, &doctor); err != nil {
		c.Error(err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, middleware.ActorFrom(c), &doctor)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DecideDoctor(c *gin.Context) {
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

func (h *Handler) DeleteDoctor(c *gin.Context) {
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

func (h *Handler) PendingDoctors(c *gin.Context) {
	var page model.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		c.Error(errors.BadRequest("invalid query", err))
		return
	}

	doctors, total, f, err := h.service.Pending(c.Request.Context(), middleware.ActorFrom(c), page)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithPagination(c, doctors, f.Page, f.PageSize, total)
}
