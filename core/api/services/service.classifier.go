package services

import (
	"strings"

	models "wallet_works/core/api/models/mongodb"
)

// walletNameKeywords là bộ keyword cố định nhận dạng ví theo tên sản phẩm.
// So khớp substring, không phân biệt hoa thường. Thứ tự chỉ là thứ tự duyệt,
// một keyword khớp là đủ.
var walletNameKeywords = []string{
	"wallet",
	"billfold",
	"bifold",
	"trifold",
	"clutch",
	"card holder",
	"cardholder",
	"money clip",
	"checkbook",
	"front pocket",
}

// accessoryNameKeywords tồn tại để log quan sát: nó KHÔNG đổi kết quả
// phân loại, mọi thứ không phải ví đều là phụ kiện sẵn rồi.
var accessoryNameKeywords = []string{
	"keychain",
	"key fob",
	"belt",
	"koozie",
	"gift card",
	"sticker",
	"hat",
	"apron",
	"care kit",
}

// attributeRule là một rule trích xuất thuộc tính theo tên property.
// Duyệt theo thứ tự khai báo, rule đầu tiên khớp thắng.
type attributeRule struct {
	substrings []string
	assign     func(*models.WalletAttributes, string)
}

// attributeRules cố định thứ tự: rule cụ thể hơn đứng trước
// ("badge cutout" phải thử trước "badge").
var attributeRules = []attributeRule{
	{[]string{"leather", "color"}, func(a *models.WalletAttributes, v string) { a.Leather = v }},
	{[]string{"monogram"}, func(a *models.WalletAttributes, v string) { a.Monogram = v }},
	{[]string{"engrav"}, func(a *models.WalletAttributes, v string) { a.Engraving = v }},
	{[]string{"custom id"}, func(a *models.WalletAttributes, v string) { a.CustomID = v }},
	{[]string{"badge cutout", "cutout"}, func(a *models.WalletAttributes, v string) { a.BadgeCutout = v }},
	{[]string{"badge"}, func(a *models.WalletAttributes, v string) { a.BadgeType = v }},
	{[]string{"logo"}, func(a *models.WalletAttributes, v string) { a.CustomLogo = v }},
	{[]string{"note"}, func(a *models.WalletAttributes, v string) { a.CustomerNote = v }},
}

// Classification là kết quả phân loại một line item
type Classification struct {
	ItemType        string                  // "wallet" hoặc "accessory"
	WalletType      string                  // TypeID trong catalog; rỗng nếu không xác định được
	WalletTypeLabel string                  // Label hiển thị của loại ví
	Points          int                     // Điểm sản xuất; phụ kiện luôn 0
	NeedsReview     bool                    // Ví nhưng không khớp loại nào trong catalog
	Attributes      models.WalletAttributes // Thuộc tính sản xuất trích xuất từ properties
}

// Classify phân loại một line item theo tên sản phẩm và properties.
// Pure function: cùng input luôn cho cùng output, không đọc state ngoài
// catalog được truyền vào.
//
// Quyết định ví / phụ kiện: tên khớp keyword ví, HOẶC tên resolve ra một
// loại trong catalog có IsWalletLine (dòng sản phẩm như "Rio Grande"
// không chứa chữ "wallet"). Mặc định an toàn là phụ kiện.
func Classify(productName string, properties []models.PropertyKV, catalog *Catalog) Classification {
	lowerName := strings.ToLower(productName)

	isWallet := false
	for _, kw := range walletNameKeywords {
		if strings.Contains(lowerName, kw) {
			isWallet = true
			break
		}
	}

	var entry *CatalogEntry
	if catalog != nil {
		entry = catalog.Resolve(lowerName)
	}
	if !isWallet && entry != nil && entry.IsWalletLine {
		isWallet = true
	}

	if !isWallet {
		// Phụ kiện: điểm 0 vĩnh viễn, không trích xuất thuộc tính
		return Classification{
			ItemType: models.ItemTypeAccessory,
		}
	}

	result := Classification{
		ItemType:   models.ItemTypeWallet,
		Attributes: extractAttributes(properties),
	}

	if entry != nil {
		result.WalletType = entry.TypeID
		result.WalletTypeLabel = entry.Label
		result.Points = entry.Points
	} else {
		// Ví nhưng không xác định được loại: đưa vào hàng chờ operator,
		// không chặn ingest
		result.NeedsReview = true
	}

	return result
}

// IsKnownAccessoryName báo tên sản phẩm khớp keyword phụ kiện tường minh.
// Chỉ dùng cho logging, không tham gia quyết định phân loại.
func IsKnownAccessoryName(productName string) bool {
	lowerName := strings.ToLower(productName)
	for _, kw := range accessoryNameKeywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

// extractAttributes duyệt properties theo thứ tự, mỗi property thử các
// rule theo thứ tự khai báo; rule đầu tiên khớp thắng. Property không
// khớp rule nào được giữ nguyên văn trong Extra.
func extractAttributes(properties []models.PropertyKV) models.WalletAttributes {
	var attrs models.WalletAttributes

	for _, prop := range properties {
		name := strings.ToLower(strings.TrimSpace(prop.Name))
		value := strings.TrimSpace(prop.Value)
		if name == "" || value == "" {
			continue
		}

		matched := false
		for _, rule := range attributeRules {
			for _, sub := range rule.substrings {
				if strings.Contains(name, sub) {
					rule.assign(&attrs, value)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}

		if !matched {
			attrs.Extra = append(attrs.Extra, models.PropertyKV{Name: prop.Name, Value: prop.Value})
		}
	}

	return attrs
}
