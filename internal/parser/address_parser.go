package parser

import (
	"regexp"
	"strings"

	"github.com/fulfillment-service/app/models"
)

// rePhone số điện thoại VN: 0xxx hoặc +84xxx, 9-12 chữ số
var rePhone = regexp.MustCompile(`^(\+?84|0)\d{8,11}$`)

// ParseAddress tách heuristic một địa chỉ tự do dạng
// "số nhà đường, phường, quận, tỉnh" thành các thành phần ứng viên.
//
// Quy ước vị trí: segment cuối = province, kế cuối = district, thứ ba từ
// cuối = ward; phần đầu còn lại ghép bằng ", " thành street. Dưới 4 segment
// thì street fallback về nguyên chuỗi raw và các cấp thiếu để rỗng.
// Segment đầu tiên nếu chứa "-" được tách thêm để nhặt số điện thoại.
//
// Đây là parse best-effort, không đảm bảo đúng — caller phải coi mọi field
// là optional.
func ParseAddress(raw string) models.ParsedAddress {
	parsed := models.ParsedAddress{Street: strings.TrimSpace(raw)}

	var segs []string
	for _, seg := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(seg); s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return parsed
	}

	parsed.Phone = extractPhone(segs[0])

	n := len(segs)
	parsed.Province = segs[n-1]
	if n >= 2 {
		parsed.District = segs[n-2]
	}
	if n >= 3 {
		parsed.Ward = segs[n-3]
	}
	if n >= 4 {
		parsed.Street = strings.Join(segs[:n-3], ", ")
	}

	return parsed
}

// extractPhone nhặt số điện thoại từ segment đầu dạng "0901234567 - Tên"
// hoặc "Tên - 0901234567". Không có "-" hoặc không phần nào giống số điện
// thoại thì trả về rỗng.
func extractPhone(seg string) string {
	if !strings.Contains(seg, "-") {
		return ""
	}
	for _, part := range strings.Split(seg, "-") {
		part = strings.TrimSpace(part)
		if rePhone.MatchString(part) {
			return part
		}
	}
	return ""
}
