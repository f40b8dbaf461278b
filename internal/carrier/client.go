package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
)

// Config cấu hình kết nối carrier
type Config struct {
	BaseURL string
	Token   string
	ShopID  int
	Timeout time.Duration
}

// Client HTTP client gọi API carrier kiểu GHN: POST JSON, auth bằng Token
// header, response bọc trong envelope {code, message, data}.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

var _ ReferenceClient = (*Client)(nil)
var _ OrderClient = (*Client)(nil)

// NewClient tạo mới carrier Client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// ListProvinces lấy danh sách tỉnh/thành phố
func (c *Client) ListProvinces(ctx context.Context) ([]models.Province, error) {
	var out []models.Province
	if err := c.post(ctx, "/master-data/province", struct{}{}, &out); err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	return out, nil
}

// ListDistricts lấy danh sách quận/huyện của một tỉnh
func (c *Client) ListDistricts(ctx context.Context, provinceID int) ([]models.District, error) {
	var out []models.District
	if err := c.post(ctx, "/master-data/district", districtQuery{ProvinceID: provinceID}, &out); err != nil {
		return nil, fmt.Errorf("list districts (province %d): %w", provinceID, err)
	}
	return out, nil
}

// ListWards lấy danh sách phường/xã của một quận
func (c *Client) ListWards(ctx context.Context, districtID int) ([]models.Ward, error) {
	var out []models.Ward
	if err := c.post(ctx, "/master-data/ward", wardQuery{DistrictID: districtID}, &out); err != nil {
		return nil, fmt.Errorf("list wards (district %d): %w", districtID, err)
	}
	return out, nil
}

// CreateOrder gửi draft sang carrier, trả về mã vận đơn. Caller phải
// Validate draft trước — client không tự kiểm tra lại.
func (c *Client) CreateOrder(ctx context.Context, draft *models.ShippingOrderDraft) (string, error) {
	var data createOrderData
	if err := c.post(ctx, "/v2/shipping-order/create", draft, &data); err != nil {
		return "", fmt.Errorf("create shipping order: %w", err)
	}
	c.logger.Info("Đã tạo vận đơn",
		zap.String("order_code", data.OrderCode),
		zap.Int("district_id", draft.ToDistrictID),
		zap.String("ward_code", draft.ToWardCode))
	return data.OrderCode, nil
}

// CancelOrder hủy một vận đơn đã tạo
func (c *Client) CancelOrder(ctx context.Context, orderCode string) error {
	if err := c.post(ctx, "/v2/switch-status/cancel", cancelQuery{OrderCodes: []string{orderCode}}, nil); err != nil {
		return fmt.Errorf("cancel shipping order %s: %w", orderCode, err)
	}
	return nil
}

// post gửi POST JSON và decode envelope. Lỗi HTTP/envelope trả về *APIError,
// lỗi transport trả về error thường (retryable phía caller).
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", c.cfg.Token)
	if c.cfg.ShopID > 0 {
		req.Header.Set("ShopId", strconv.Itoa(c.cfg.ShopID))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return &APIError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || env.Code != http.StatusOK {
		code := env.Code
		if code == 0 {
			code = resp.StatusCode
		}
		c.logger.Warn("Carrier trả về lỗi",
			zap.String("path", path),
			zap.Int("code", code),
			zap.String("message", env.Message))
		return &APIError{Code: code, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
