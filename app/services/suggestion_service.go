package services

import (
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/fulfillment-service/app/models"
	"github.com/fulfillment-service/internal/matcher"
)

// SuggestionService xếp hạng các đơn vị hành chính gần giống nhất với text
// staff đang gõ, dùng cho cấp chưa resolve được. Chỉ là gợi ý hiển thị —
// không bao giờ tự gán kết quả vào draft.
type SuggestionService struct {
	topK     int
	minScore float64
	logger   *zap.Logger
}

// NewSuggestionService tạo mới SuggestionService
func NewSuggestionService(topK int, minScore float64, logger *zap.Logger) *SuggestionService {
	if topK <= 0 {
		topK = 5
	}
	return &SuggestionService{topK: topK, minScore: minScore, logger: logger}
}

// RankProvinces gợi ý tỉnh theo text
func (ss *SuggestionService) RankProvinces(text string, provinces []models.Province) []models.Suggestion {
	candidates := make([]models.Suggestion, 0, len(provinces))
	for _, p := range provinces {
		candidates = append(candidates, models.Suggestion{
			Code:  strconv.Itoa(p.ProvinceID),
			Name:  p.ProvinceName,
			Score: matcher.Score(text, p.ProvinceName, p.NameExtension),
		})
	}
	return ss.rank(text, candidates)
}

// RankDistricts gợi ý quận trong phạm vi một tỉnh đã resolve
func (ss *SuggestionService) RankDistricts(text string, districts []models.District) []models.Suggestion {
	candidates := make([]models.Suggestion, 0, len(districts))
	for _, d := range districts {
		candidates = append(candidates, models.Suggestion{
			Code:  strconv.Itoa(d.DistrictID),
			Name:  d.DistrictName,
			Score: matcher.Score(text, d.DistrictName, d.NameExtension),
		})
	}
	return ss.rank(text, candidates)
}

// RankWards gợi ý phường trong phạm vi một quận đã resolve
func (ss *SuggestionService) RankWards(text string, wards []models.Ward) []models.Suggestion {
	candidates := make([]models.Suggestion, 0, len(wards))
	for _, w := range wards {
		candidates = append(candidates, models.Suggestion{
			Code:  w.WardCode,
			Name:  w.WardName,
			Score: matcher.Score(text, w.WardName, w.NameExtension),
		})
	}
	return ss.rank(text, candidates)
}

func (ss *SuggestionService) rank(text string, candidates []models.Suggestion) []models.Suggestion {
	if text == "" {
		return nil
	}

	filtered := candidates[:0]
	for _, c := range candidates {
		if c.Score >= ss.minScore {
			filtered = append(filtered, c)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	if len(filtered) > ss.topK {
		filtered = filtered[:ss.topK]
	}
	if len(filtered) > 0 {
		ss.logger.Debug("Đã xếp hạng gợi ý",
			zap.String("text", text),
			zap.Int("count", len(filtered)),
			zap.Float64("top_score", filtered[0].Score))
	}
	return filtered
}
