package responses

import "github.com/fulfillment-service/app/services"

// ErrorResponse response lỗi chuẩn của API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SessionResponse response bọc snapshot của một form session
type SessionResponse struct {
	Session *services.Snapshot `json:"session"`
}

// SubmitResponse response khi submit vận đơn thành công
type SubmitResponse struct {
	OrderCode string `json:"order_code"`
}

// AckResponse response xác nhận cho các thao tác không trả dữ liệu
type AckResponse struct {
	Status string `json:"status"`
}
