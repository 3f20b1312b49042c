// Package dto chứa các cấu trúc vào/ra của tầng HTTP.
package dto

import (
	"encoding/json"
	"strconv"
)

// ShopifyAddress là địa chỉ trong payload webhook của Shopify
type ShopifyAddress struct {
	Name     string `json:"name,omitempty"`
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Zip      string `json:"zip,omitempty"`
	Country  string `json:"country,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ShopifyCustomer là thông tin khách hàng trong payload webhook
type ShopifyCustomer struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ShopifyLineItemProperty là một property tùy biến trên line item
// (leather, monogram, engraving, ...). Shopify gửi dạng cặp name/value.
type ShopifyLineItemProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ShopifyLineItem là một dòng sản phẩm trong payload webhook.
// ID là bắt buộc: payload thiếu ID bị từ chối ngay, không đoán mò.
// Raw giữ nguyên văn toàn bộ line item gốc để lưu kèm bản ghi; các field
// Shopify thêm sau này đi qua hệ thống mà không cần khai báo trước.
type ShopifyLineItem struct {
	ID           int64                     `json:"id"`
	ProductID    int64                     `json:"product_id,omitempty"`
	VariantID    int64                     `json:"variant_id,omitempty"`
	Title        string                    `json:"title"`
	VariantTitle string                    `json:"variant_title,omitempty"`
	SKU          string                    `json:"sku,omitempty"`
	Quantity     int                       `json:"quantity"`
	Price        string                    `json:"price,omitempty"` // Shopify gửi tiền dạng chuỗi thập phân
	Properties   []ShopifyLineItemProperty `json:"properties,omitempty"`
	Raw          map[string]interface{}    `json:"-"` // Line item gốc, giữ nguyên văn
}

// UnmarshalJSON decode các field khai báo và đồng thời giữ lại bản gốc
// của line item trong Raw
func (li *ShopifyLineItem) UnmarshalJSON(data []byte) error {
	type alias ShopifyLineItem
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*li = ShopifyLineItem(a)
	li.Raw = raw
	return nil
}

// ShopifyOrderPayload là payload của webhook orders/create và orders/updated.
// Chỉ khai báo các field hệ thống thực sự đọc; phần còn lại của payload
// được giữ trong webhook log dạng raw body.
type ShopifyOrderPayload struct {
	ID                int64             `json:"id"`   // ID đơn hàng bên Shopify (bắt buộc)
	Name              string            `json:"name"` // Số đơn hiển thị, ví dụ "#1042"
	Email             string            `json:"email,omitempty"`
	CreatedAt         string            `json:"created_at,omitempty"`   // RFC3339
	CancelledAt       string            `json:"cancelled_at,omitempty"` // RFC3339; non-empty nghĩa là đơn đã hủy
	FinancialStatus   string            `json:"financial_status,omitempty"`
	FulfillmentStatus string            `json:"fulfillment_status,omitempty"`
	Tags              string            `json:"tags,omitempty"`        // Comma-separated
	TotalPrice        string            `json:"total_price,omitempty"` // Chuỗi thập phân
	Currency          string            `json:"currency,omitempty"`
	Customer          *ShopifyCustomer  `json:"customer,omitempty"`
	BillingAddress    *ShopifyAddress   `json:"billing_address,omitempty"`
	ShippingAddress   *ShopifyAddress   `json:"shipping_address,omitempty"`
	LineItems         []ShopifyLineItem `json:"line_items"`
}

// IDString trả về ID đơn hàng dạng chuỗi, dùng làm sourceOrderId trong hệ thống
func (p ShopifyOrderPayload) IDString() string {
	if p.ID == 0 {
		return ""
	}
	return strconv.FormatInt(p.ID, 10)
}
