package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WalletTypeDef là một mục trong catalog loại ví: bộ keyword nhận dạng
// theo tên sản phẩm và điểm sản xuất của loại đó.
// Catalog được seed lúc khởi động và nạp vào Classifier dưới dạng bất biến.
type WalletTypeDef struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của bản ghi

	// TypeID là mã định danh ổn định của loại ví (ví dụ "badge-trifold").
	TypeID string `json:"typeId" bson:"typeId" index:"unique"`
	// Label là tên hiển thị (ví dụ "Badge Trifold").
	Label string `json:"label" bson:"label"`
	// Keywords là các cụm từ nhận dạng trong tên sản phẩm, so khớp
	// không phân biệt hoa thường. Cụm dài hơn luôn được thử trước.
	Keywords []string `json:"keywords" bson:"keywords"`
	// Points là điểm sản xuất cho một line item thuộc loại này.
	Points int `json:"points" bson:"points"`
	// IsWalletLine đánh dấu keyword của loại này tự nó xác nhận sản phẩm
	// là ví (tên dòng sản phẩm như "Rio Grande" không chứa chữ "wallet").
	IsWalletLine bool `json:"isWalletLine" bson:"isWalletLine" default:"true"`

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo bản ghi (Unix ms)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật bản ghi (Unix ms)
}
