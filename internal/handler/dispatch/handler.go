package dispatch

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ferrari4891/selecttravel-api/internal/handler"
	"github.com/Ferrari4891/selecttravel-api/internal/middleware"
	"github.com/Ferrari4891/selecttravel-api/internal/scheduler"
)

type Handler struct {
	dispatcher *scheduler.Dispatcher
}

func NewHandler(dispatcher *scheduler.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// RunCycle triggers a dispatch cycle on demand. The cycle lock still applies,
// so a manual run overlapping the scheduled one is refused with 409.
func (h *Handler) RunCycle(c *gin.Context) {
	summary, err := h.dispatcher.RunCycle(c.Request.Context(), time.Now())
	if err != nil {
		if errors.Is(err, scheduler.ErrCycleInProgress) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse("dispatch cycle already in progress"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(summary))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	r.POST("/dispatch/run", authMw.Authenticate(), h.RunCycle)
}
