package requests

import "github.com/fulfillment-service/app/models"

// OpenSessionRequest request mở form vận đơn cho một order
type OpenSessionRequest struct {
	Order models.Order `json:"order" binding:"required"`
}

// EditFieldRequest request sửa một field trên form. Value luôn là chuỗi —
// field số được parse phía service.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}
