package normalizer

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var reSpaces = regexp.MustCompile(`\s+`)

// adminPrefixes từ vựng tiền tố hành chính, xếp theo độ dài giảm dần để
// tiền tố nhiều từ ("thanh pho") match trước tiền tố ngắn ("tp").
var adminPrefixes = []string{
	"thanh pho",
	"thi tran",
	"thi xa",
	"phuong",
	"huyen",
	"quan",
	"tinh",
	"t.t",
	"tp.",
	"tp",
	"tt",
	"tx",
	"xa",
	"q.",
	"p.",
	"q",
	"p",
	"x",
	"h",
}

// Normalize chuẩn hóa text về dạng so khớp: NFD bỏ dấu, fold về ascii
// (đ -> d), lowercase, gọn khoảng trắng. Hàm thuần, idempotent.
func Normalize(s string) string {
	s = StripDiacritics(s)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(s)
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// StripAdminPrefix bỏ TỐI ĐA MỘT tiền tố hành chính đứng đầu chuỗi đã
// normalize ("quan ha dong" -> "ha dong"). Tiền tố phải có khoảng trắng
// theo sau; không match tiền tố nào thì trả về nguyên vẹn. Không đệ quy.
func StripAdminPrefix(s string) string {
	for _, p := range adminPrefixes {
		if strings.HasPrefix(s, p+" ") {
			return strings.TrimSpace(s[len(p)+1:])
		}
	}
	return s
}
