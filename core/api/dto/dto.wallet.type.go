package dto

// WalletTypeCreateInput là input để thêm một loại ví vào catalog
type WalletTypeCreateInput struct {
	TypeID       string   `json:"typeId" validate:"required"`            // Định danh dạng slug, ví dụ "badge-trifold"
	Label        string   `json:"label" validate:"required"`             // Tên hiển thị
	Keywords     []string `json:"keywords" validate:"required,min=1,dive,required"` // Các keyword khớp tên sản phẩm
	Points       int      `json:"points" validate:"min=0"`               // Điểm định mức
	IsWalletLine bool     `json:"isWalletLine"`                          // Tên dòng sản phẩm tự nó định nghĩa một loại ví
}

// WalletTypeUpdateInput là input để sửa một loại ví trong catalog
type WalletTypeUpdateInput struct {
	Label        string   `json:"label,omitempty"`
	Keywords     []string `json:"keywords,omitempty" validate:"omitempty,min=1,dive,required"`
	Points       *int     `json:"points,omitempty" validate:"omitempty,min=0"`
	IsWalletLine *bool    `json:"isWalletLine,omitempty"`
}
