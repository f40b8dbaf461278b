package models

// ParsedAddress kết quả tách heuristic của một địa chỉ tự do.
// Mọi field trừ Street đều có thể rỗng — caller phải coi tất cả là optional.
type ParsedAddress struct {
	Street   string `json:"street"`
	Ward     string `json:"ward,omitempty"`
	District string `json:"district,omitempty"`
	Province string `json:"province,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
