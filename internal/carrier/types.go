package carrier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fulfillment-service/app/models"
)

// ReferenceClient API dữ liệu hành chính của carrier (tỉnh/quận/phường)
type ReferenceClient interface {
	ListProvinces(ctx context.Context) ([]models.Province, error)
	ListDistricts(ctx context.Context, provinceID int) ([]models.District, error)
	ListWards(ctx context.Context, districtID int) ([]models.Ward, error)
}

// OrderClient API tạo/hủy vận đơn của carrier
type OrderClient interface {
	CreateOrder(ctx context.Context, draft *models.ShippingOrderDraft) (string, error)
	CancelOrder(ctx context.Context, orderCode string) error
}

// APIError lỗi nghiệp vụ từ carrier (envelope code != 200 hoặc HTTP != 2xx)
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("carrier: [%d] %s", e.Code, e.Message)
}

// envelope response chuẩn của carrier: {code, message, data}
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// createOrderData data trả về khi tạo vận đơn thành công
type createOrderData struct {
	OrderCode string `json:"order_code"`
}

// districtQuery body cho master-data/district
type districtQuery struct {
	ProvinceID int `json:"province_id"`
}

// wardQuery body cho master-data/ward
type wardQuery struct {
	DistrictID int `json:"district_id"`
}

// cancelQuery body cho switch-status/cancel
type cancelQuery struct {
	OrderCodes []string `json:"order_codes"`
}
