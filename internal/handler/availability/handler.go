package availability

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/internal/availability"
	"github.com/jwalitptl/dravail-api/internal/handler"
	"github.com/jwalitptl/dravail-api/internal/model"
	"github.com/jwalitptl/dravail-api/pkg/httputil"
)

// Handler lets forms check a schedule before submitting a listing.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/availability/validate", h.ValidateAvailability)
}

type validateResponse struct {
	Valid        bool                `json:"valid"`
	Errors       availability.Errors `json:"errors"`
	Availability *model.Availability `json:"availability,omitempty"`
}

// ValidateAvailability always answers 200. Schedule problems are listed in
// the body so the form can show all of them at once.
func (h *Handler) ValidateAvailability(c *gin.Context) {
	var a model.Availability
	if err := handler.BindJSON(c, &a); err != nil {
		c.Error(err)
		return
	}

	errs := availability.ValidateSchedule(&a)
	if errs == nil {
		errs = availability.Errors{}
	}
	resp := validateResponse{Valid: len(errs) == 0, Errors: errs}
	if resp.Valid {
		resp.Availability = &a
	}
	httputil.RespondWithSuccess(c, resp)
}
