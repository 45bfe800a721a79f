package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/handler"
	"github.com/Ferrari4891/selecttravel-api/internal/middleware"
	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/service/schedule"
)

const defaultResultLimit = 50

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
				return true
			}
			return false
		})
	}
}

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

type scheduleRequest struct {
	BusinessID     uuid.UUID               `json:"business_id" binding:"required"`
	Kind           model.ScheduleKind      `json:"kind" binding:"required,oneof=voucher report"`
	Pattern        model.RecurrencePattern `json:"pattern" binding:"required"`
	SendTime       *string                 `json:"send_time"`
	SendDay        *string                 `json:"send_day" binding:"omitempty,weekday"`
	SendDayOfMonth *int                    `json:"send_day_of_month"`
	Template       json.RawMessage         `json:"template" binding:"required"`
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	s := &model.Schedule{
		BusinessID:     req.BusinessID,
		Kind:           req.Kind,
		Pattern:        req.Pattern,
		SendTime:       req.SendTime,
		SendDay:        req.SendDay,
		SendDayOfMonth: req.SendDayOfMonth,
		Template:       req.Template,
	}

	if err := h.service.CreateSchedule(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(s))
}

func (h *Handler) GetSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	s, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

func (h *Handler) ListSchedules(c *gin.Context) {
	businessID, err := uuid.Parse(c.Query("business_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("business_id query parameter is required"))
		return
	}

	schedules, err := h.service.ListSchedules(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(schedules))
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	s, err := h.service.GetSchedule(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	s.Kind = req.Kind
	s.Pattern = req.Pattern
	s.SendTime = req.SendTime
	s.SendDay = req.SendDay
	s.SendDayOfMonth = req.SendDayOfMonth
	s.Template = req.Template

	if err := h.service.UpdateSchedule(c.Request.Context(), s); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(s))
}

func (h *Handler) DeactivateSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	if err := h.service.DeactivateSchedule(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "is_active": false}))
}

func (h *Handler) ActivateSchedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	if err := h.service.ActivateSchedule(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "is_active": true}))
}

func (h *Handler) ListDispatchResults(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid schedule ID"))
		return
	}

	limit := defaultResultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		limit = parsed
	}

	results, err := h.service.ListDispatchResults(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(results))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	schedules := r.Group("/schedules", authMw.Authenticate())
	{
		schedules.POST("", h.CreateSchedule)
		schedules.GET("", h.ListSchedules)
		schedules.GET("/:id", h.GetSchedule)
		schedules.PUT("/:id", h.UpdateSchedule)
		schedules.POST("/:id/activate", h.ActivateSchedule)
		schedules.POST("/:id/deactivate", h.DeactivateSchedule)
		schedules.GET("/:id/results", h.ListDispatchResults)
	}
}
