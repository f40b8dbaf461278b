package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
	"github.com/fulfillment-service/app/requests"
	"github.com/fulfillment-service/app/responses"
	"github.com/fulfillment-service/app/services"
	"github.com/fulfillment-service/internal/carrier"
)

// FulfillmentController controller xử lý các request của form vận đơn
type FulfillmentController struct {
	formService *services.FormService
	logger      *zap.Logger
}

// NewFulfillmentController tạo mới FulfillmentController
func NewFulfillmentController(formService *services.FormService, logger *zap.Logger) *FulfillmentController {
	return &FulfillmentController{
		formService: formService,
		logger:      logger,
	}
}

// OpenSession mở form vận đơn cho một order
func (fc *FulfillmentController) OpenSession(c *gin.Context) {
	var req requests.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	snap, err := fc.formService.OpenForOrder(c.Request.Context(), req.Order)
	if err != nil {
		fc.logger.Error("Lỗi mở form vận đơn", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "OPEN_SESSION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, responses.SessionResponse{Session: snap})
}

// GetSession trả về snapshot hiện tại của một session
func (fc *FulfillmentController) GetSession(c *gin.Context) {
	snap, err := fc.formService.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		fc.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.SessionResponse{Session: snap})
}

// EditField sửa một field của draft, trả về snapshot sau cascade
func (fc *FulfillmentController) EditField(c *gin.Context) {
	var req requests.EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "Request không hợp lệ: " + err.Error(),
		})
		return
	}

	snap, err := fc.formService.EditField(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		fc.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.SessionResponse{Session: snap})
}

// Submit validate và gửi vận đơn sang carrier
func (fc *FulfillmentController) Submit(c *gin.Context) {
	orderCode, snap, err := fc.formService.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingWardCode), errors.Is(err, models.ErrMissingDistrictID), errors.Is(err, models.ErrInvalidDimension):
			// Chặn tại chỗ, carrier chưa hề được gọi
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "VALIDATION_FAILED",
				"message": err.Error(),
				"session": snap,
			})
		case errors.Is(err, services.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   "SESSION_NOT_FOUND",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrSessionNotEditing):
			c.JSON(http.StatusConflict, responses.ErrorResponse{
				Error:   "SESSION_BUSY",
				Message: err.Error(),
			})
		default:
			// Carrier từ chối hoặc lỗi mạng — draft vẫn còn để sửa
			var apiErr *carrier.APIError
			if errors.As(err, &apiErr) {
				c.JSON(http.StatusBadGateway, gin.H{
					"error":   "CARRIER_REJECTED",
					"message": apiErr.Message,
					"session": snap,
				})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "CARRIER_UNAVAILABLE",
				"message": err.Error(),
				"session": snap,
			})
		}
		return
	}

	c.JSON(http.StatusOK, responses.SubmitResponse{OrderCode: orderCode})
}

// CloseSession đóng form, bỏ draft
func (fc *FulfillmentController) CloseSession(c *gin.Context) {
	if err := fc.formService.Close(c.Param("id")); err != nil {
		fc.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.AckResponse{Status: "closed"})
}

// CancelOrder hủy một vận đơn đã tạo bên carrier
func (fc *FulfillmentController) CancelOrder(c *gin.Context) {
	if err := fc.formService.CancelOrder(c.Request.Context(), c.Param("code")); err != nil {
		var apiErr *carrier.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadGateway, responses.ErrorResponse{
				Error:   "CARRIER_REJECTED",
				Message: apiErr.Message,
			})
			return
		}
		c.JSON(http.StatusBadGateway, responses.ErrorResponse{
			Error:   "CARRIER_UNAVAILABLE",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, responses.AckResponse{Status: "cancelled"})
}

// HealthCheck health check đơn giản
func (fc *FulfillmentController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "fulfillment",
	})
}

// respondServiceError map lỗi service sang HTTP status
func (fc *FulfillmentController) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:   "SESSION_NOT_FOUND",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrSessionNotEditing):
		c.JSON(http.StatusConflict, responses.ErrorResponse{
			Error:   "SESSION_BUSY",
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrUnknownField):
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "UNKNOWN_FIELD",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "EDIT_ERROR",
			Message: err.Error(),
		})
	}
}
