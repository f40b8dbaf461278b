package resolver

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
	"github.com/fulfillment-service/internal/carrier"
	"github.com/fulfillment-service/internal/matcher"
)

// Resolver resolve text tự do thành mã hành chính của carrier theo thứ tự
// province -> district -> ward. Mỗi session form có một Resolver riêng;
// cache bên trong append-only và sống cùng session (reference data coi như
// ổn định trong suốt session, không invalidate).
type Resolver struct {
	client carrier.ReferenceClient
	logger *zap.Logger

	mu                  sync.RWMutex
	provinces           []models.Province
	provincesLoaded     bool
	districtsByProvince map[int][]models.District
	wardsByDistrict     map[int][]models.Ward
}

// New tạo mới Resolver
func New(client carrier.ReferenceClient, logger *zap.Logger) *Resolver {
	return &Resolver{
		client:              client,
		logger:              logger,
		districtsByProvince: make(map[int][]models.District),
		wardsByDistrict:     make(map[int][]models.Ward),
	}
}

// Provinces danh sách tỉnh, fetch lần đầu rồi cache
func (r *Resolver) Provinces(ctx context.Context) ([]models.Province, error) {
	r.mu.RLock()
	if r.provincesLoaded {
		defer r.mu.RUnlock()
		return r.provinces, nil
	}
	r.mu.RUnlock()

	provinces, err := r.client.ListProvinces(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if !r.provincesLoaded {
		r.provinces = provinces
		r.provincesLoaded = true
	}
	provinces = r.provinces
	r.mu.Unlock()
	return provinces, nil
}

// Districts danh sách quận của một tỉnh, cache theo provinceID
func (r *Resolver) Districts(ctx context.Context, provinceID int) ([]models.District, error) {
	r.mu.RLock()
	if cached, ok := r.districtsByProvince[provinceID]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	districts, err := r.client.ListDistricts(ctx, provinceID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if cached, ok := r.districtsByProvince[provinceID]; ok {
		districts = cached
	} else {
		r.districtsByProvince[provinceID] = districts
	}
	r.mu.Unlock()
	return districts, nil
}

// Wards danh sách phường của một quận, cache theo districtID
func (r *Resolver) Wards(ctx context.Context, districtID int) ([]models.Ward, error) {
	r.mu.RLock()
	if cached, ok := r.wardsByDistrict[districtID]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	wards, err := r.client.ListWards(ctx, districtID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if cached, ok := r.wardsByDistrict[districtID]; ok {
		wards = cached
	} else {
		r.wardsByDistrict[districtID] = wards
	}
	r.mu.Unlock()
	return wards, nil
}

// ResolveProvince tìm tỉnh đầu tiên match với name. (nil, nil) = không match
// — trạng thái bình thường, không phải lỗi. error chỉ khi fetch hỏng.
func (r *Resolver) ResolveProvince(ctx context.Context, name string) (*models.Province, error) {
	if name == "" {
		return nil, nil
	}
	provinces, err := r.Provinces(ctx)
	if err != nil {
		return nil, err
	}
	for i := range provinces {
		if matcher.NamesMatch(name, provinces[i].ProvinceName, provinces[i].NameExtension) {
			return &provinces[i], nil
		}
	}
	r.logger.Debug("Không resolve được province", zap.String("name", name))
	return nil, nil
}

// ResolveDistrict tìm quận match với name TRONG PHẠM VI một tỉnh. Không
// bao giờ tìm sang tỉnh khác.
func (r *Resolver) ResolveDistrict(ctx context.Context, name string, provinceID int) (*models.District, error) {
	if name == "" || provinceID <= 0 {
		return nil, nil
	}
	districts, err := r.Districts(ctx, provinceID)
	if err != nil {
		return nil, err
	}
	for i := range districts {
		if matcher.NamesMatch(name, districts[i].DistrictName, districts[i].NameExtension) {
			return &districts[i], nil
		}
	}
	r.logger.Debug("Không resolve được district",
		zap.String("name", name), zap.Int("province_id", provinceID))
	return nil, nil
}

// ResolveWard tìm phường match với name trong phạm vi một quận
func (r *Resolver) ResolveWard(ctx context.Context, name string, districtID int) (*models.Ward, error) {
	if name == "" || districtID <= 0 {
		return nil, nil
	}
	wards, err := r.Wards(ctx, districtID)
	if err != nil {
		return nil, err
	}
	for i := range wards {
		if matcher.NamesMatch(name, wards[i].WardName, wards[i].NameExtension) {
			return &wards[i], nil
		}
	}
	r.logger.Debug("Không resolve được ward",
		zap.String("name", name), zap.Int("district_id", districtID))
	return nil, nil
}

// CascadeFromProvince xử lý một edit ở cấp tỉnh: resolve lại province, dọn
// district/ward không còn thuộc subtree mới, rồi thử resolve lại
// district/ward từ text đang gõ. Mỗi cấp tối đa một lần resolve.
func (r *Resolver) CascadeFromProvince(ctx context.Context, res *Resolution, provinceText, districtText, wardText string) error {
	province, err := r.ResolveProvince(ctx, provinceText)
	if err != nil {
		return err
	}
	if province == nil {
		// Tỉnh không xác định thì các cấp dưới cũng không còn căn cứ
		res.Province, res.District, res.Ward = nil, nil, nil
		return nil
	}

	res.Province = province
	res.District, res.Ward = nil, nil
	return r.cascadeDistrict(ctx, res, districtText, wardText)
}

// CascadeFromDistrict xử lý một edit ở cấp quận. Cần province đã resolve;
// nếu chưa thì resolve từ provinceText trước. Không bao giờ đụng ngược lên
// cấp trên ngoài trường hợp đó.
func (r *Resolver) CascadeFromDistrict(ctx context.Context, res *Resolution, provinceText, districtText, wardText string) error {
	if res.Province == nil {
		province, err := r.ResolveProvince(ctx, provinceText)
		if err != nil {
			return err
		}
		if province == nil {
			res.District, res.Ward = nil, nil
			return nil
		}
		res.Province = province
	}
	return r.cascadeDistrict(ctx, res, districtText, wardText)
}

// CascadeFromWard xử lý một edit ở cấp phường — cấp lá, không cascade tiếp.
func (r *Resolver) CascadeFromWard(ctx context.Context, res *Resolution, wardText string) error {
	if res.District == nil {
		res.Ward = nil
		return nil
	}
	ward, err := r.ResolveWard(ctx, wardText, res.District.DistrictID)
	if err != nil {
		return err
	}
	res.Ward = ward
	return nil
}

// cascadeDistrict resolve district trong tỉnh hiện tại rồi thử tiếp ward.
// District fail thì ward cũng bị dọn theo.
func (r *Resolver) cascadeDistrict(ctx context.Context, res *Resolution, districtText, wardText string) error {
	district, err := r.ResolveDistrict(ctx, districtText, res.Province.ProvinceID)
	if err != nil {
		res.District, res.Ward = nil, nil
		return err
	}
	if district == nil {
		res.District, res.Ward = nil, nil
		return nil
	}

	// Dọn ward cũ trước khi thử lại: nếu fetch ward lỗi thì ward của quận
	// cũ không được phép sót lại dưới quận mới
	res.District, res.Ward = district, nil
	return r.CascadeFromWard(ctx, res, wardText)
}
