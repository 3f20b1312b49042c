package utility

import (
	"strconv"
	"strings"
	"time"
)

// ParseMoney parse chuỗi tiền tệ dạng thập phân ("29.50") sang float64.
// Shopify gửi price dưới dạng string; chuỗi rỗng hoặc không parse được trả về 0.
func ParseMoney(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// SplitTags tách chuỗi tags phân cách bằng dấu phẩy thành slice, trim khoảng trắng,
// bỏ phần tử rỗng. "rush, wholesale ,," → ["rush", "wholesale"].
func SplitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// FirstNonEmpty trả về chuỗi đầu tiên khác rỗng (sau khi trim) trong danh sách.
// Dùng cho chuỗi fallback tên người đặt hàng: customer name → billing name → "Unknown".
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// JoinDistinct ghép các chuỗi khác rỗng thành một chuỗi phân cách bằng ", ",
// loại bỏ trùng lặp nhưng giữ thứ tự xuất hiện đầu tiên.
// Dùng để build walletTypeSummary của đơn hàng.
func JoinDistinct(values []string) string {
	seen := make(map[string]bool, len(values))
	distinct := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		distinct = append(distinct, v)
	}
	return strings.Join(distinct, ", ")
}

// ParseSourceTime parse timestamp RFC3339 từ payload nguồn sang Unix milliseconds.
// Chuỗi rỗng hoặc sai định dạng trả về 0 (caller coi như không có giá trị).
func ParseSourceTime(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
