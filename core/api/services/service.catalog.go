package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
	"wallet_works/core/global"
)

// CatalogEntry là một loại ví trong catalog đã chuẩn hóa cho Classifier:
// keywords lowercase và sắp xếp dài trước ngắn.
type CatalogEntry struct {
	TypeID       string
	Label        string
	Keywords     []string
	Points       int
	IsWalletLine bool
}

// Catalog là danh mục loại ví bất biến dùng cho phân loại.
// Thứ tự duyệt: loại có cụm keyword dài nhất đứng trước, nên
// "Badge Trifold Wallet" ra badge-trifold chứ không bao giờ ra loại
// có keyword ngắn hơn chứa trong cụm đó.
type Catalog struct {
	entries []CatalogEntry
}

// NewCatalog tạo catalog từ danh sách entry: lowercase toàn bộ keyword,
// sort keyword trong từng loại dài trước, sort các loại theo độ dài
// keyword dài nhất giảm dần. Thứ tự ổn định để kết quả deterministic.
func NewCatalog(defs []models.WalletTypeDef) *Catalog {
	entries := make([]CatalogEntry, 0, len(defs))
	for _, def := range defs {
		kws := make([]string, 0, len(def.Keywords))
		for _, kw := range def.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			continue
		}
		sort.SliceStable(kws, func(i, j int) bool {
			return len(kws[i]) > len(kws[j])
		})
		entries = append(entries, CatalogEntry{
			TypeID:       def.TypeID,
			Label:        def.Label,
			Keywords:     kws,
			Points:       def.Points,
			IsWalletLine: def.IsWalletLine,
		})
	}
	// Keywords đã sort nên keyword dài nhất của mỗi loại nằm ở index 0
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Keywords[0]) > len(entries[j].Keywords[0])
	})
	return &Catalog{entries: entries}
}

// Entries trả về danh sách entry theo thứ tự duyệt
func (c *Catalog) Entries() []CatalogEntry {
	return c.entries
}

// Resolve tìm loại ví khớp tên sản phẩm (đã lowercase). Trả về entry
// đầu tiên có keyword là substring của tên; không khớp trả về nil.
func (c *Catalog) Resolve(lowerName string) *CatalogEntry {
	for i := range c.entries {
		for _, kw := range c.entries[i].Keywords {
			if strings.Contains(lowerName, kw) {
				return &c.entries[i]
			}
		}
	}
	return nil
}

// EntryFor tìm entry theo TypeID
func (c *Catalog) EntryFor(typeID string) (CatalogEntry, bool) {
	for i := range c.entries {
		if c.entries[i].TypeID == typeID {
			return c.entries[i], true
		}
	}
	return CatalogEntry{}, false
}

// PointsFor trả về điểm của một TypeID; không có trong catalog trả về 0
func (c *Catalog) PointsFor(typeID string) int {
	for i := range c.entries {
		if c.entries[i].TypeID == typeID {
			return c.entries[i].Points
		}
	}
	return 0
}

// LabelFor trả về label hiển thị của một TypeID
func (c *Catalog) LabelFor(typeID string) string {
	for i := range c.entries {
		if c.entries[i].TypeID == typeID {
			return c.entries[i].Label
		}
	}
	return ""
}

// DefaultWalletTypeDefs là catalog seed lúc khởi động khi collection
// wallet_types còn trống. Điểm theo bảng định mức của xưởng.
func DefaultWalletTypeDefs() []models.WalletTypeDef {
	return []models.WalletTypeDef{
		{TypeID: "badge-trifold", Label: "Badge Trifold", Keywords: []string{"badge trifold"}, Points: 6, IsWalletLine: true},
		{TypeID: "badge-vertical", Label: "Badge Vertical", Keywords: []string{"badge vertical", "vertical badge"}, Points: 6, IsWalletLine: true},
		{TypeID: "sugar-land-clutch", Label: "Sugar Land Clutch", Keywords: []string{"sugar land clutch"}, Points: 5, IsWalletLine: true},
		{TypeID: "rio-grande", Label: "Rio Grande", Keywords: []string{"rio grande"}, Points: 5, IsWalletLine: true},
		{TypeID: "checkbook-cover", Label: "Checkbook Cover", Keywords: []string{"checkbook cover", "checkbook"}, Points: 5, IsWalletLine: true},
		{TypeID: "front-pocket", Label: "Front Pocket", Keywords: []string{"front pocket"}, Points: 4, IsWalletLine: true},
		{TypeID: "money-clip", Label: "Money Clip", Keywords: []string{"money clip"}, Points: 4, IsWalletLine: true},
		{TypeID: "card-holder", Label: "Card Holder", Keywords: []string{"card holder", "cardholder"}, Points: 3, IsWalletLine: true},
		{TypeID: "long-wallet", Label: "Long Wallet", Keywords: []string{"long wallet"}, Points: 5, IsWalletLine: true},
		{TypeID: "trifold", Label: "Trifold", Keywords: []string{"trifold"}, Points: 5, IsWalletLine: true},
		{TypeID: "bifold", Label: "Bifold", Keywords: []string{"bifold", "billfold"}, Points: 4, IsWalletLine: true},
		{TypeID: "clutch", Label: "Clutch", Keywords: []string{"clutch"}, Points: 5, IsWalletLine: true},
	}
}

// WalletTypeService quản lý collection wallet_types (catalog loại ví)
type WalletTypeService struct {
	*BaseServiceMongoImpl[models.WalletTypeDef]
}

// NewWalletTypeService tạo mới WalletTypeService
func NewWalletTypeService() (*WalletTypeService, error) {
	col, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WalletTypes)
	if !exist {
		return nil, fmt.Errorf("failed to get wallet_types collection: %v", common.ErrNotFound)
	}

	return &WalletTypeService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.WalletTypeDef](col),
	}, nil
}

// SeedDefaults chèn catalog mặc định nếu collection còn trống.
// Gọi một lần lúc khởi động, trước khi build Catalog cho Classifier.
func (s *WalletTypeService) SeedDefaults(ctx context.Context) error {
	count, err := s.CountDocuments(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err = s.InsertMany(ctx, DefaultWalletTypeDefs())
	return err
}

// LoadCatalog đọc toàn bộ wallet_types và build Catalog bất biến
func (s *WalletTypeService) LoadCatalog(ctx context.Context) (*Catalog, error) {
	defs, err := s.Find(ctx, bson.D{}, nil)
	if err != nil {
		return nil, err
	}
	return NewCatalog(defs), nil
}
