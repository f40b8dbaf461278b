package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// CarrierCfg cấu hình kết nối carrier
type CarrierCfg struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Token     string `yaml:"token" json:"token"`
	ShopID    int    `yaml:"shop_id" json:"shop_id"`
	TimeoutMs int    `yaml:"timeout_ms" json:"timeout_ms"`
}

// PackageDefaults số đo kiện hàng mặc định khi mở form (staff sửa được)
type PackageDefaults struct {
	Weight int `yaml:"weight" json:"weight"` // gram
	Length int `yaml:"length" json:"length"` // cm
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// SuggestCfg cấu hình xếp hạng gợi ý cho cấp chưa resolve
type SuggestCfg struct {
	TopK     int     `yaml:"top_k" json:"top_k"`
	MinScore float64 `yaml:"min_score" json:"min_score"`
}

// CacheCfg cấu hình cache reference data dùng chung
type CacheCfg struct {
	RedisURL string `yaml:"redis_url" json:"redis_url"` // rỗng = chỉ dùng L1
	L1Size   int    `yaml:"l1_size" json:"l1_size"`
	TTLHours int    `yaml:"ttl_hours" json:"ttl_hours"`
}

// Cfg cấu hình toàn service
type Cfg struct {
	Carrier  CarrierCfg      `yaml:"carrier" json:"carrier"`
	Defaults PackageDefaults `yaml:"package_defaults" json:"package_defaults"`
	Suggest  SuggestCfg      `yaml:"suggest" json:"suggest"`
	Cache    CacheCfg        `yaml:"cache" json:"cache"`
}

var C = Defaults()

// Defaults giá trị mặc định khi không có file config
func Defaults() Cfg {
	return Cfg{
		Carrier: CarrierCfg{
			BaseURL:   "https://online-gateway.ghn.vn/shiip/public-api",
			TimeoutMs: 30000,
		},
		Defaults: PackageDefaults{Weight: 500, Length: 20, Width: 20, Height: 10},
		Suggest:  SuggestCfg{TopK: 5, MinScore: 0.6},
		Cache:    CacheCfg{L1Size: 128, TTLHours: 24},
	}
}

// Load đọc config từ file yaml rồi apply ENV overrides. File không bắt
// buộc — không có thì dùng defaults + ENV.
func Load(path string) error {
	C = Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(b, &C); err != nil {
			return err
		}
	}

	// ENV overrides
	if v := os.Getenv("CARRIER_BASE_URL"); v != "" {
		C.Carrier.BaseURL = v
	}
	if v := os.Getenv("CARRIER_TOKEN"); v != "" {
		C.Carrier.Token = v
	}
	if v := os.Getenv("CARRIER_SHOP_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			C.Carrier.ShopID = id
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		C.Cache.RedisURL = v
	}
	return nil
}

// CarrierTimeout timeout cho HTTP client gọi carrier
func CarrierTimeout() time.Duration {
	if C.Carrier.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(C.Carrier.TimeoutMs) * time.Millisecond
}

// CacheTTL TTL cho L2 reference cache
func CacheTTL() time.Duration {
	if C.Cache.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(C.Cache.TTLHours) * time.Hour
}
