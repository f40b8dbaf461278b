package models

// Order đơn hàng từ storefront, nguồn dữ liệu để tạo vận đơn
type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress string      `json:"shipping_address"` // Địa chỉ tự do: "số nhà đường, phường, quận, tỉnh"
	TotalAmount     int64       `json:"total_amount"`
	Items           []OrderItem `json:"items"`
}

// OrderItem một dòng hàng trong đơn
type OrderItem struct {
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Weight      int    `json:"weight,omitempty"` // gram
}
