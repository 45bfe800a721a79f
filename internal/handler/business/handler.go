package business

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/handler"
	"github.com/Ferrari4891/selecttravel-api/internal/middleware"
	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/service/business"
)

type Handler struct {
	service *business.Service
}

func NewHandler(service *business.Service) *Handler {
	return &Handler{service: service}
}

type createBusinessRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Category string `json:"category"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

func (h *Handler) CreateBusiness(c *gin.Context) {
	var req createBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	ownerID, _ := c.Get(middleware.ContextUserID)

	b := &model.Business{
		OwnerID:  ownerID.(uuid.UUID),
		Name:     req.Name,
		Email:    req.Email,
		Category: req.Category,
		City:     req.City,
		Country:  req.Country,
	}

	if err := h.service.CreateBusiness(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(b))
}

func (h *Handler) GetBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	b, err := h.service.GetBusiness(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(b))
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	filters := make(map[string]interface{})

	if city := c.Query("city"); city != "" {
		filters["city"] = city
	}
	if category := c.Query("category"); category != "" {
		filters["category"] = category
	}
	if status := c.Query("status"); status != "" {
		filters["status"] = model.BusinessStatus(status)
	}

	businesses, err := h.service.ListBusinesses(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(businesses))
}

func (h *Handler) UpdateBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	b, err := h.service.GetBusiness(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	var req createBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	b.Name = req.Name
	b.Email = req.Email
	b.Category = req.Category
	b.City = req.City
	b.Country = req.Country

	if err := h.service.UpdateBusiness(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(b))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	businesses := r.Group("/businesses")
	{
		businesses.GET("", h.ListBusinesses)
		businesses.GET("/:id", h.GetBusiness)
		businesses.POST("", authMw.Authenticate(), h.CreateBusiness)
		businesses.PUT("/:id", authMw.Authenticate(), h.UpdateBusiness)
	}
}
