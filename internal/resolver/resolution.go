package resolver

import "github.com/fulfillment-service/app/models"

// Resolution trạng thái resolve hiện tại của một form session, một con trỏ
// cho mỗi cấp. nil = unresolved — đây là trạng thái bình thường, không phải
// lỗi. Các unit trỏ tới là reference data bất biến nên copy nông an toàn.
type Resolution struct {
	Province *models.Province
	District *models.District
	Ward     *models.Ward
}

// ProvinceStatus trạng thái cấp tỉnh để render feedback
func (r *Resolution) ProvinceStatus() models.LevelStatus {
	if r.Province == nil {
		return models.UnresolvedLevel()
	}
	return models.ResolvedLevel(r.Province.ProvinceName)
}

// DistrictStatus trạng thái cấp quận
func (r *Resolution) DistrictStatus() models.LevelStatus {
	if r.District == nil {
		return models.UnresolvedLevel()
	}
	return models.ResolvedLevel(r.District.DistrictName)
}

// WardStatus trạng thái cấp phường
func (r *Resolution) WardStatus() models.LevelStatus {
	if r.Ward == nil {
		return models.UnresolvedLevel()
	}
	return models.ResolvedLevel(r.Ward.WardName)
}

// DistrictID id quận đã resolve, 0 nếu chưa
func (r *Resolution) DistrictID() int {
	if r.District == nil {
		return 0
	}
	return r.District.DistrictID
}

// WardCode code phường đã resolve, rỗng nếu chưa
func (r *Resolution) WardCode() string {
	if r.Ward == nil {
		return ""
	}
	return r.Ward.WardCode
}
