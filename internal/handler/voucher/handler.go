package voucher

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ferrari4891/selecttravel-api/internal/handler"
	"github.com/Ferrari4891/selecttravel-api/internal/middleware"
	"github.com/Ferrari4891/selecttravel-api/internal/model"
	"github.com/Ferrari4891/selecttravel-api/internal/service/voucher"
)

type Handler struct {
	service *voucher.Service
}

func NewHandler(service *voucher.Service) *Handler {
	return &Handler{service: service}
}

type createVoucherRequest struct {
	BusinessID    uuid.UUID          `json:"business_id" binding:"required"`
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description"`
	DiscountType  model.DiscountType `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue float64            `json:"discount_value" binding:"required,gt=0"`
	StartsAt      *time.Time         `json:"starts_at"`
	ExpiresAt     time.Time          `json:"expires_at" binding:"required"`
}

func (h *Handler) CreateVoucher(c *gin.Context) {
	var req createVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	v := &model.Voucher{
		BusinessID:    req.BusinessID,
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		ExpiresAt:     req.ExpiresAt,
	}
	if req.StartsAt != nil {
		v.StartsAt = *req.StartsAt
	}

	if err := h.service.CreateVoucher(c.Request.Context(), v); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(v))
}

func (h *Handler) GetVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid voucher ID"))
		return
	}

	v, err := h.service.GetVoucher(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(v))
}

func (h *Handler) ListVouchers(c *gin.Context) {
	businessID, err := uuid.Parse(c.Query("business_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("business_id query parameter is required"))
		return
	}

	activeOnly := c.Query("active") == "true"

	vouchers, err := h.service.ListVouchers(c.Request.Context(), businessID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(vouchers))
}

func (h *Handler) DeactivateVoucher(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid voucher ID"))
		return
	}

	if err := h.service.DeactivateVoucher(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "is_active": false}))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMw *middleware.AuthMiddleware) {
	vouchers := r.Group("/vouchers")
	{
		vouchers.GET("", h.ListVouchers)
		vouchers.GET("/:id", h.GetVoucher)
		vouchers.POST("", authMw.Authenticate(), h.CreateVoucher)
		vouchers.POST("/:id/deactivate", authMw.Authenticate(), h.DeactivateVoucher)
	}
}
