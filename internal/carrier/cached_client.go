package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
)

const provincesKey = "provinces"

// CachedClient decorator cache quanh ReferenceClient: L1 LRU in-memory,
// L2 Redis (optional) với TTL. Chỉ cache reference data — dữ liệu hành
// chính thay đổi rất chậm nên TTL dài được chấp nhận.
type CachedClient struct {
	inner  ReferenceClient
	redis  *redis.Client // nil = không có L2
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	provinces *lru.Cache[string, []models.Province]
	districts *lru.Cache[int, []models.District]
	wards     *lru.Cache[int, []models.Ward]

	// Stats
	hits   int64
	misses int64
}

var _ ReferenceClient = (*CachedClient)(nil)

// NewCachedClient tạo mới CachedClient. redisClient có thể nil, khi đó chỉ
// dùng L1.
func NewCachedClient(inner ReferenceClient, redisClient *redis.Client, l1Size int, ttl time.Duration, logger *zap.Logger) (*CachedClient, error) {
	if l1Size <= 0 {
		l1Size = 128
	}
	provinces, err := lru.New[string, []models.Province](2)
	if err != nil {
		return nil, err
	}
	districts, err := lru.New[int, []models.District](l1Size)
	if err != nil {
		return nil, err
	}
	wards, err := lru.New[int, []models.Ward](l1Size)
	if err != nil {
		return nil, err
	}

	return &CachedClient{
		inner:     inner,
		redis:     redisClient,
		logger:    logger,
		prefix:    "fulfillment:ref:",
		ttl:       ttl,
		provinces: provinces,
		districts: districts,
		wards:     wards,
	}, nil
}

// ListProvinces lấy danh sách tỉnh, ưu tiên L1 -> L2 -> carrier
func (cc *CachedClient) ListProvinces(ctx context.Context) ([]models.Province, error) {
	if cached, ok := cc.provinces.Get(provincesKey); ok {
		atomic.AddInt64(&cc.hits, 1)
		return cached, nil
	}

	var out []models.Province
	if cc.fromRedis(ctx, provincesKey, &out) {
		cc.provinces.Add(provincesKey, out)
		return out, nil
	}

	atomic.AddInt64(&cc.misses, 1)
	out, err := cc.inner.ListProvinces(ctx)
	if err != nil {
		return nil, err
	}
	cc.provinces.Add(provincesKey, out)
	cc.toRedis(ctx, provincesKey, out)
	return out, nil
}

// ListDistricts lấy danh sách quận của một tỉnh qua cache
func (cc *CachedClient) ListDistricts(ctx context.Context, provinceID int) ([]models.District, error) {
	if cached, ok := cc.districts.Get(provinceID); ok {
		atomic.AddInt64(&cc.hits, 1)
		return cached, nil
	}

	key := fmt.Sprintf("districts:%d", provinceID)
	var out []models.District
	if cc.fromRedis(ctx, key, &out) {
		cc.districts.Add(provinceID, out)
		return out, nil
	}

	atomic.AddInt64(&cc.misses, 1)
	out, err := cc.inner.ListDistricts(ctx, provinceID)
	if err != nil {
		return nil, err
	}
	cc.districts.Add(provinceID, out)
	cc.toRedis(ctx, key, out)
	return out, nil
}

// ListWards lấy danh sách phường của một quận qua cache
func (cc *CachedClient) ListWards(ctx context.Context, districtID int) ([]models.Ward, error) {
	if cached, ok := cc.wards.Get(districtID); ok {
		atomic.AddInt64(&cc.hits, 1)
		return cached, nil
	}

	key := fmt.Sprintf("wards:%d", districtID)
	var out []models.Ward
	if cc.fromRedis(ctx, key, &out) {
		cc.wards.Add(districtID, out)
		return out, nil
	}

	atomic.AddInt64(&cc.misses, 1)
	out, err := cc.inner.ListWards(ctx, districtID)
	if err != nil {
		return nil, err
	}
	cc.wards.Add(districtID, out)
	cc.toRedis(ctx, key, out)
	return out, nil
}

// Stats trả về (hits, misses)
func (cc *CachedClient) Stats() (int64, int64) {
	return atomic.LoadInt64(&cc.hits), atomic.LoadInt64(&cc.misses)
}

// fromRedis đọc L2, lỗi Redis chỉ log warn rồi coi như miss
func (cc *CachedClient) fromRedis(ctx context.Context, key string, out interface{}) bool {
	if cc.redis == nil {
		return false
	}
	val, err := cc.redis.Get(ctx, cc.prefix+key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		cc.logger.Warn("Lỗi đọc Redis cache", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		cc.logger.Warn("Cache entry hỏng, bỏ qua", zap.String("key", key), zap.Error(err))
		return false
	}
	atomic.AddInt64(&cc.hits, 1)
	return true
}

func (cc *CachedClient) toRedis(ctx context.Context, key string, val interface{}) {
	if cc.redis == nil {
		return
	}
	payload, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := cc.redis.Set(ctx, cc.prefix+key, payload, cc.ttl).Err(); err != nil {
		cc.logger.Warn("Lỗi ghi Redis cache", zap.String("key", key), zap.Error(err))
	}
}
