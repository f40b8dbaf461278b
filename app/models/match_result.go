package models

// Status constants cho trạng thái resolve của một cấp hành chính
const (
	StatusUnresolved = "unresolved"
	StatusResolved   = "resolved"
)

// LevelStatus trạng thái resolve của một cấp trong hierarchy, dùng để render
// live feedback trên form. MatchedName chỉ có khi Status == resolved.
type LevelStatus struct {
	Status      string `json:"status"` // unresolved | resolved
	MatchedName string `json:"matched_name,omitempty"`
}

// ResolvedLevel tạo LevelStatus ở trạng thái resolved
func ResolvedLevel(name string) LevelStatus {
	return LevelStatus{Status: StatusResolved, MatchedName: name}
}

// UnresolvedLevel tạo LevelStatus ở trạng thái unresolved
func UnresolvedLevel() LevelStatus {
	return LevelStatus{Status: StatusUnresolved}
}

// Suggestion một gợi ý đơn vị hành chính cho cấp chưa resolve được
type Suggestion struct {
	Code  string  `json:"code"` // ProvinceID/DistrictID dạng chuỗi, hoặc WardCode
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
