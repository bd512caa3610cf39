package message

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/internal/handler"
	"github.com/jwalitptl/dravail-api/internal/middleware"
	"github.com/jwalitptl/dravail-api/internal/model"
	messageService "github.com/jwalitptl/dravail-api/internal/service/message"
	"github.com/jwalitptl/dravail-api/pkg/httputil"
)

type Handler struct {
	service *messageService.Service
}

func NewHandler(service *messageService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public contact form. limit throttles submissions
// per client.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, limit gin.HandlerFunc) {
	r.POST("/messages", limit, h.SubmitMessage)
}

// RegisterAdminRoutes mounts the inbox on an authenticated group.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	messages := admin.Group("/messages")
	{
		messages.GET("", h.ListMessages)
		messages.GET("/:id", h.GetMessage)
		messages.POST("/:id/response", h.RespondToMessage)
	}
}

type respondRequest struct {
	Response string `json:"response"`
}

func (h *Handler) SubmitMessage(c *gin.Context) {
	var req messageService.SubmitRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	msg, err := h.service.Submit(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithCreated(c, gin.H{"id": msg.ID, "reference": msg.Reference})
}

func (h *Handler) ListMessages(c *gin.Context) {
	kind := model.MessageKind(c.Query("kind"))
	msgs, err := h.service.List(c.Request.Context(), middleware.ActorFrom(c), kind)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, msgs)
}

func (h *Handler) GetMessage(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	msg, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, msg)
}

func (h *Handler) RespondToMessage(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req respondRequest
	if err := handler.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	msg, err := h.service.Respond(c.Request.Context(), id, middleware.ActorFrom(c), req.Response)
	if err != nil {
		c.Error(err)
		return
	}
	httputil.RespondWithSuccess(c, msg)
}
