package matcher

import (
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"

	"github.com/fulfillment-service/internal/normalizer"
)

// NamesMatch so khớp một candidate tự do với tên chính thức của đơn vị
// hành chính (kèm danh sách alias nếu có).
//
// Hai tên được coi là match khi MỘT trong các điều kiện sau đúng:
//   - bằng nhau sau khi normalize
//   - bằng nhau sau khi bỏ tiền tố hành chính (mọi tổ hợp strip/không strip)
//   - chứa nhau theo một trong hai chiều giữa các dạng trên
//
// Containment cố tình rộng: tên ngắn ("Đông") match được tên dài chứa nó
// ("Hà Đông"). Đây là trade-off precision/recall được giữ nguyên, không sửa.
func NamesMatch(candidate, name string, aliases []string) bool {
	if matchOne(candidate, name) {
		return true
	}
	for _, alias := range aliases {
		if matchOne(candidate, alias) {
			return true
		}
	}
	return false
}

func matchOne(candidate, name string) bool {
	c := normalizer.Normalize(candidate)
	n := normalizer.Normalize(name)
	if c == "" || n == "" {
		return false
	}

	cs := normalizer.StripAdminPrefix(c)
	ns := normalizer.StripAdminPrefix(n)

	// exact trước, rẻ nhất
	if c == n || c == ns || cs == n || cs == ns {
		return true
	}

	// containment hai chiều trên mọi tổ hợp strip
	for _, a := range [2]string{c, cs} {
		for _, b := range [2]string{n, ns} {
			if strings.Contains(a, b) || strings.Contains(b, a) {
				return true
			}
		}
	}
	return false
}

// Score chấm điểm fuzzy giữa candidate và tên đơn vị (kèm alias), trả về
// max của Jaro-Winkler và Levenshtein đã chuẩn hóa theo độ dài. Chỉ dùng
// để xếp hạng gợi ý — KHÔNG tham gia quyết định NamesMatch.
func Score(candidate, name string, aliases []string) float64 {
	q := normalizer.Normalize(candidate)
	if q == "" {
		return 0
	}

	maxScore := scoreOne(q, name)
	for _, alias := range aliases {
		if s := scoreOne(q, alias); s > maxScore {
			maxScore = s
		}
	}
	return maxScore
}

func scoreOne(q, name string) float64 {
	n := normalizer.Normalize(name)
	if n == "" {
		return 0
	}

	score := smetrics.JaroWinkler(q, n, 0.7, 4)

	levDist := levenshtein.ComputeDistance(q, n)
	maxLen := math.Max(float64(len(q)), float64(len(n)))
	if maxLen > 0 {
		if levScore := 1.0 - float64(levDist)/maxLen; levScore > score {
			score = levScore
		}
	}
	return score
}
