package models

import (
	"errors"
	"fmt"
)

// Lỗi validate trước khi gửi draft sang carrier
var (
	ErrMissingWardCode   = errors.New("ward chưa được resolve (to_ward_code rỗng)")
	ErrMissingDistrictID = errors.New("district chưa được resolve (to_district_id <= 0)")
	ErrInvalidDimension  = errors.New("số đo kiện hàng không hợp lệ")
)

// DraftItem một mặt hàng khai báo trong vận đơn
type DraftItem struct {
	Name     string `json:"name"`
	Code     string `json:"code,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Weight   int    `json:"weight,omitempty"`
}

// ShippingOrderDraft payload vận đơn mà staff chỉnh sửa rồi gửi sang carrier.
//
// Carrier nhận province theo TÊN nhưng district/ward theo CODE — bất đối xứng
// này là invariant của API phía carrier, không phải bug.
type ShippingOrderDraft struct {
	ToName         string `json:"to_name"`
	ToPhone        string `json:"to_phone"`
	ToAddress      string `json:"to_address"` // Địa chỉ đường/số nhà dạng tự do
	ToProvinceName string `json:"to_province_name"`
	ToDistrictID   int    `json:"to_district_id"`
	ToWardCode     string `json:"to_ward_code"`

	Weight int `json:"weight"` // gram
	Length int `json:"length"` // cm
	Width  int `json:"width"`  // cm
	Height int `json:"height"` // cm

	CODAmount      int64 `json:"cod_amount"`
	InsuranceValue int64 `json:"insurance_value"`

	Items []DraftItem `json:"items"`
	Note  string      `json:"note,omitempty"`
}

// Validate kiểm tra invariant submit: ward+district đã resolve, số đo kiện hợp lệ.
// Gọi trước mọi network call — draft không hợp lệ thì không được gửi đi.
func (d *ShippingOrderDraft) Validate() error {
	if d.ToWardCode == "" {
		return ErrMissingWardCode
	}
	if d.ToDistrictID <= 0 {
		return ErrMissingDistrictID
	}
	for name, v := range map[string]int{
		"weight": d.Weight,
		"length": d.Length,
		"width":  d.Width,
		"height": d.Height,
	} {
		if v <= 0 {
			return fmt.Errorf("%w: %s phải là số nguyên dương, got %d", ErrInvalidDimension, name, v)
		}
	}
	return nil
}
