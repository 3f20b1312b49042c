package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address chứa thông tin địa chỉ giao hàng / thanh toán từ đơn Shopify
type Address struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty"`         // Tên người nhận
	Address1 string `json:"address1,omitempty" bson:"address1,omitempty"` // Địa chỉ dòng 1
	Address2 string `json:"address2,omitempty" bson:"address2,omitempty"` // Địa chỉ dòng 2
	City     string `json:"city,omitempty" bson:"city,omitempty"`         // Thành phố
	Province string `json:"province,omitempty" bson:"province,omitempty"` // Tỉnh / bang
	Zip      string `json:"zip,omitempty" bson:"zip,omitempty"`           // Mã bưu điện
	Country  string `json:"country,omitempty" bson:"country,omitempty"`   // Quốc gia
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`       // Số điện thoại
}

// Order lưu đơn hàng đã ingest từ webhook Shopify.
// Mỗi đơn là một bản ghi duy nhất theo sourceOrderId; webhook duplicate
// đi vào đường update thay vì tạo bản ghi thứ hai.
type Order struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của đơn hàng

	// ===== SOURCE INFO =====
	SourceOrderID string `json:"sourceOrderId" bson:"sourceOrderId" index:"unique"` // ID đơn hàng bên Shopify (khóa idempotency)
	OrderNumber   string `json:"orderNumber,omitempty" bson:"orderNumber,omitempty" index:"single:1"` // Số đơn hiển thị (ví dụ "#1042")
	SourceCreatedAt int64 `json:"sourceCreatedAt,omitempty" bson:"sourceCreatedAt,omitempty" index:"single:-1"` // Thời gian tạo đơn bên nguồn (Unix ms)

	// ===== LIFECYCLE =====
	Status string `json:"status" bson:"status" index:"single:1" default:"pending"` // Trạng thái vòng đời đơn, bắt đầu từ pending

	// ===== CUSTOMER INFO =====
	CustomerName string `json:"customerName" bson:"customerName"` // Tên người đặt (fallback: billing address, "Unknown")
	Email        string `json:"email,omitempty" bson:"email,omitempty"`

	// ===== SOURCE METADATA (refresh khi orders/updated) =====
	FinancialStatus   string   `json:"financialStatus,omitempty" bson:"financialStatus,omitempty"`
	FulfillmentStatus string   `json:"fulfillmentStatus,omitempty" bson:"fulfillmentStatus,omitempty"`
	Tags              []string `json:"tags,omitempty" bson:"tags,omitempty"`
	CancelledAt       int64    `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"` // 0 = chưa hủy
	ShippingAddress   *Address `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty"`
	BillingAddress    *Address `json:"billingAddress,omitempty" bson:"billingAddress,omitempty"`

	// ===== MONEY =====
	TotalPrice float64 `json:"totalPrice,omitempty" bson:"totalPrice,omitempty"`
	Currency   string  `json:"currency,omitempty" bson:"currency,omitempty"`

	// ===== CLASSIFICATION AGGREGATES (tính một lần lúc ingest) =====
	TotalWallets      int    `json:"totalWallets" bson:"totalWallets"`                // Số line item là ví
	TotalAccessories  int    `json:"totalAccessories" bson:"totalAccessories"`       // Số line item là phụ kiện
	WalletTypeSummary string `json:"walletTypeSummary,omitempty" bson:"walletTypeSummary,omitempty"` // Các loại ví distinct, nối bằng dấu phẩy
	Points            int    `json:"points" bson:"points"`                           // Tổng điểm sản xuất của cả đơn

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo bản ghi (Unix ms)
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật bản ghi (Unix ms)
}
