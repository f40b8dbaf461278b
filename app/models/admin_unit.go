package models

// Province đơn vị hành chính cấp tỉnh/thành phố theo dữ liệu carrier
type Province struct {
	ProvinceID    int      `json:"ProvinceID"`
	ProvinceName  string   `json:"ProvinceName"`
	NameExtension []string `json:"NameExtension,omitempty"` // Các tên gọi khác (viết tắt, tên cũ)
}

// District đơn vị hành chính cấp quận/huyện, thuộc một tỉnh
type District struct {
	DistrictID    int      `json:"DistrictID"`
	ProvinceID    int      `json:"ProvinceID"`
	DistrictName  string   `json:"DistrictName"`
	NameExtension []string `json:"NameExtension,omitempty"`
}

// Ward đơn vị hành chính cấp phường/xã. Carrier định danh ward bằng code dạng chuỗi.
type Ward struct {
	WardCode      string   `json:"WardCode"`
	DistrictID    int      `json:"DistrictID"`
	WardName      string   `json:"WardName"`
	NameExtension []string `json:"NameExtension,omitempty"`
}

// Field constants cho các cấp hành chính trong form
const (
	FieldProvince = "province"
	FieldDistrict = "district"
	FieldWard     = "ward"
)
