package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái fulfillment của một line item.
// Luồng hợp lệ: pending -> claimed -> in_progress -> completed; pending -> void.
const (
	StatusPending    = "pending"
	StatusClaimed    = "claimed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusVoid       = "void"
)

// Các loại item sau phân loại
const (
	ItemTypeWallet    = "wallet"
	ItemTypeAccessory = "accessory"
)

// PropertyKV là một property thô từ line item Shopify được giữ nguyên văn
// khi không khớp rule trích xuất nào.
type PropertyKV struct {
	Name  string `json:"name" bson:"name"`
	Value string `json:"value" bson:"value"`
}

// WalletAttributes chứa các thuộc tính sản xuất trích xuất từ properties
// của line item (chỉ áp dụng cho ví).
type WalletAttributes struct {
	Leather      string       `json:"leather,omitempty" bson:"leather,omitempty"`           // Loại da / màu
	Monogram     string       `json:"monogram,omitempty" bson:"monogram,omitempty"`         // Chữ dập monogram
	Engraving    string       `json:"engraving,omitempty" bson:"engraving,omitempty"`       // Nội dung khắc
	CustomID     string       `json:"customId,omitempty" bson:"customId,omitempty"`         // Mã tùy biến khách cung cấp
	BadgeCutout  string       `json:"badgeCutout,omitempty" bson:"badgeCutout,omitempty"`   // Kiểu khoét badge
	BadgeType    string       `json:"badgeType,omitempty" bson:"badgeType,omitempty"`       // Loại badge
	CustomLogo   string       `json:"customLogo,omitempty" bson:"customLogo,omitempty"`     // Logo tùy biến
	CustomerNote string       `json:"customerNote,omitempty" bson:"customerNote,omitempty"` // Ghi chú của khách
	Extra        []PropertyKV `json:"extra,omitempty" bson:"extra,omitempty"`               // Properties không khớp rule nào, giữ nguyên văn
}

// LineItem là đơn vị giao việc của xưởng: một dòng sản phẩm trong đơn hàng,
// đã được phân loại ví / phụ kiện và mang trạng thái fulfillment riêng.
type LineItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của line item

	// ===== SOURCE INFO =====
	OrderID          primitive.ObjectID `json:"orderId" bson:"orderId" index:"single:1"`                     // ID đơn hàng nội bộ
	SourceOrderID    string             `json:"sourceOrderId" bson:"sourceOrderId" index:"single:1"`         // ID đơn hàng bên Shopify
	SourceLineItemID string             `json:"sourceLineItemId,omitempty" bson:"sourceLineItemId,omitempty" index:"unique,sparse"` // ID line item bên Shopify (sparse: dữ liệu nhập tay có thể vắng)

	// ===== PRODUCT INFO =====
	ProductID    string  `json:"productId,omitempty" bson:"productId,omitempty" index:"single:1"` // ID sản phẩm bên Shopify
	VariantID    string  `json:"variantId,omitempty" bson:"variantId,omitempty"`                  // ID variant bên Shopify
	ProductName  string  `json:"productName" bson:"productName"`
	VariantTitle string  `json:"variantTitle,omitempty" bson:"variantTitle,omitempty"`
	SKU          string  `json:"sku,omitempty" bson:"sku,omitempty"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	Price        float64 `json:"price,omitempty" bson:"price,omitempty"`

	// SourceLineItem giữ nguyên văn line item gốc từ payload webhook.
	// Hệ thống không đọc từ đây; field lạ của nguồn vẫn đi qua được.
	SourceLineItem map[string]interface{} `json:"sourceLineItem,omitempty" bson:"sourceLineItem,omitempty"`

	// ===== CLASSIFICATION =====
	ItemType    string           `json:"itemType" bson:"itemType" index:"single:1"`   // "wallet" hoặc "accessory"
	WalletType  string           `json:"walletType,omitempty" bson:"walletType,omitempty" index:"single:1"` // Loại ví theo catalog; rỗng nếu chưa xác định
	Points      int              `json:"points" bson:"points"`                        // Điểm sản xuất cho MỘT line item (phụ kiện luôn 0)
	NeedsReview bool             `json:"needsReview" bson:"needsReview" index:"single:1"` // Ví nhưng không xác định được loại
	Attributes  WalletAttributes `json:"attributes,omitempty" bson:"attributes,omitempty"`

	// ===== FULFILLMENT STATE =====
	Status        string `json:"status" bson:"status" index:"single:1" default:"pending"` // Trạng thái fulfillment
	ClaimedBy     string `json:"claimedBy,omitempty" bson:"claimedBy,omitempty" index:"single:1"` // Staff ID đã nhận việc
	ClaimedByName string `json:"claimedByName,omitempty" bson:"claimedByName,omitempty"`
	ClaimedAt     int64  `json:"claimedAt,omitempty" bson:"claimedAt,omitempty"`
	StartedAt     int64  `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	CompletedAt   int64  `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	VoidedAt      int64  `json:"voidedAt,omitempty" bson:"voidedAt,omitempty"`

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo bản ghi (Unix ms)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật bản ghi (Unix ms)
}
