package services

import (
	"testing"

	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
)

func TestSuggestionService_Rank(t *testing.T) {
	ss := NewSuggestionService(2, 0.5, zap.NewNop())

	districts := []models.District{
		{DistrictID: 1, DistrictName: "Hà Đông"},
		{DistrictID: 2, DistrictName: "Ba Đình"},
		{DistrictID: 3, DistrictName: "Cầu Giấy"},
	}

	ranked := ss.RankDistricts("ha dong", districts)
	if len(ranked) == 0 {
		t.Fatal("phải có gợi ý")
	}
	if ranked[0].Name != "Hà Đông" {
		t.Errorf("gợi ý đầu = %+v", ranked[0])
	}
	if len(ranked) > 2 {
		t.Errorf("top_k = 2 nhưng trả về %d gợi ý", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("gợi ý phải xếp theo điểm giảm dần: %+v", ranked)
		}
	}
}

func TestSuggestionService_EmptyText(t *testing.T) {
	ss := NewSuggestionService(5, 0.5, zap.NewNop())
	if got := ss.RankProvinces("", []models.Province{{ProvinceID: 1, ProvinceName: "Hà Nội"}}); got != nil {
		t.Errorf("text rỗng phải trả về nil, got %+v", got)
	}
}

func TestSuggestionService_FiltersLowScores(t *testing.T) {
	ss := NewSuggestionService(5, 0.9, zap.NewNop())
	wards := []models.Ward{
		{WardCode: "1", WardName: "Phường Yết Kiêu"},
		{WardCode: "2", WardName: "Xã Vạn Phúc"},
	}
	ranked := ss.RankWards("yet kieu", wards)
	for _, s := range ranked {
		if s.Score < 0.9 {
			t.Errorf("gợi ý dưới ngưỡng lọt ra ngoài: %+v", s)
		}
	}
}
