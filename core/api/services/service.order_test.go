package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
)

func samplePayload() dto.ShopifyOrderPayload {
	return dto.ShopifyOrderPayload{
		ID:              5551042,
		Name:            "#1042",
		Email:           "buyer@example.com",
		CreatedAt:       "2026-08-29T10:15:00Z",
		FinancialStatus: "paid",
		Tags:            "rush, wholesale",
		TotalPrice:      "118.50",
		Currency:        "USD",
		Customer:        &dto.ShopifyCustomer{FirstName: "John", LastName: "Dore"},
		LineItems: []dto.ShopifyLineItem{
			{
				ID:        9001,
				ProductID: 77001,
				VariantID: 88001,
				Title:     "Trifold Wallet - Buck Brown",
				Quantity:  1,
				Price:     "59.00",
				Properties: []dto.ShopifyLineItemProperty{
					{Name: "Leather Color", Value: "Buck Brown"},
					{Name: "Monogram", Value: "JD"},
				},
			},
			{
				ID:       9002,
				Title:    "Bifold Wallet",
				Quantity: 1,
				Price:    "49.00",
			},
			{
				ID:       9003,
				Title:    "Leather Keychain",
				Quantity: 2,
				Price:    "10.50",
			},
		},
	}
}

func TestBuildOrderRecords(t *testing.T) {
	order, items := BuildOrderRecords(samplePayload(), testCatalog())

	assert.Equal(t, "5551042", order.SourceOrderID)
	assert.Equal(t, "#1042", order.OrderNumber)
	assert.Equal(t, "John Dore", order.CustomerName)
	assert.Equal(t, "buyer@example.com", order.Email)
	assert.Equal(t, []string{"rush", "wholesale"}, order.Tags)
	assert.Equal(t, 118.50, order.TotalPrice)
	assert.Equal(t, 2, order.TotalWallets)
	assert.Equal(t, 1, order.TotalAccessories)
	assert.Equal(t, 5+4, order.Points)
	assert.Equal(t, "Trifold, Bifold", order.WalletTypeSummary)
	assert.Greater(t, order.SourceCreatedAt, int64(0))
	assert.Zero(t, order.CancelledAt)

	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, models.StatusPending, item.Status)
		assert.Equal(t, "5551042", item.SourceOrderID)
	}

	assert.Equal(t, models.StatusPending, order.Status)

	assert.Equal(t, "9001", items[0].SourceLineItemID)
	assert.Equal(t, "77001", items[0].ProductID)
	assert.Equal(t, "88001", items[0].VariantID)
	assert.Empty(t, items[1].ProductID) // Payload không mang product_id thì field vắng
	assert.Equal(t, "trifold", items[0].WalletType)
	assert.Equal(t, 5, items[0].Points)
	assert.Equal(t, "Buck Brown", items[0].Attributes.Leather)
	assert.Equal(t, "JD", items[0].Attributes.Monogram)

	assert.Equal(t, models.ItemTypeAccessory, items[2].ItemType)
	assert.Zero(t, items[2].Points)
}

func TestBuildOrderRecordsSummaryDistinct(t *testing.T) {
	payload := samplePayload()
	payload.LineItems = []dto.ShopifyLineItem{
		{ID: 1, Title: "Trifold Wallet", Quantity: 1},
		{ID: 2, Title: "Trifold Wallet", Quantity: 1},
	}

	order, _ := BuildOrderRecords(payload, testCatalog())

	assert.Equal(t, "Trifold", order.WalletTypeSummary)
	assert.Equal(t, 2, order.TotalWallets)
	assert.Equal(t, 10, order.Points)
}

func TestValidatePayload(t *testing.T) {
	assert.NoError(t, validatePayload(samplePayload()))

	missingOrderID := samplePayload()
	missingOrderID.ID = 0
	assert.ErrorIs(t, validatePayload(missingOrderID), common.ErrMalformedPayload)

	missingLineItemID := samplePayload()
	missingLineItemID.LineItems[1].ID = 0
	assert.ErrorIs(t, validatePayload(missingLineItemID), common.ErrMalformedPayload)
}

func TestOrdererNameFallback(t *testing.T) {
	payload := samplePayload()
	assert.Equal(t, "John Dore", ordererName(payload))

	payload.Customer = nil
	payload.BillingAddress = &dto.ShopifyAddress{Name: "Jane Bill"}
	assert.Equal(t, "Jane Bill", ordererName(payload))

	payload.BillingAddress = nil
	assert.Equal(t, "Unknown", ordererName(payload))

	// Customer có nhưng tên rỗng cũng rơi xuống fallback
	payload.Customer = &dto.ShopifyCustomer{}
	assert.Equal(t, "Unknown", ordererName(payload))
}

// Line item gốc từ webhook phải đi nguyên văn vào bản ghi, kể cả các
// field hệ thống không khai báo trong DTO.
func TestBuildOrderRecordsKeepsRawLineItem(t *testing.T) {
	body := []byte(`{
		"id": 5551043,
		"name": "#1043",
		"line_items": [{
			"id": 9101,
			"product_id": 77002,
			"variant_id": 88002,
			"title": "Trifold Wallet",
			"quantity": 1,
			"grams": 120,
			"fulfillable_quantity": 1
		}]
	}`)

	var payload dto.ShopifyOrderPayload
	require.NoError(t, json.Unmarshal(body, &payload))

	_, items := BuildOrderRecords(payload, testCatalog())
	require.Len(t, items, 1)

	raw := items[0].SourceLineItem
	require.NotNil(t, raw, "line item gốc phải được giữ lại")
	assert.Equal(t, float64(9101), raw["id"])
	assert.Equal(t, float64(120), raw["grams"])
	assert.Equal(t, float64(1), raw["fulfillable_quantity"])

	assert.Equal(t, "77002", items[0].ProductID)
	assert.Equal(t, "88002", items[0].VariantID)
}

func TestBuildOrderUpdateSetGuardsMissingFields(t *testing.T) {
	// Payload đầy đủ: mọi field được refresh
	full := samplePayload()
	set := buildOrderUpdateSet(full, 0)
	assert.Equal(t, "John Dore", set["customerName"])
	assert.Equal(t, "buyer@example.com", set["email"])
	assert.Equal(t, 118.50, set["totalPrice"])
	assert.NotContains(t, set, "cancelledAt")

	// Payload thiếu tên người đặt: không được ghi đè tên tốt đã lưu
	// thành "Unknown"
	anonymous := samplePayload()
	anonymous.Customer = nil
	anonymous.BillingAddress = nil
	anonymous.Email = ""
	anonymous.TotalPrice = ""
	set = buildOrderUpdateSet(anonymous, 0)
	assert.NotContains(t, set, "customerName")
	assert.NotContains(t, set, "email")
	assert.NotContains(t, set, "totalPrice")

	// Hủy đơn: cancelledAt được ghi
	set = buildOrderUpdateSet(full, 1756461300000)
	assert.Equal(t, int64(1756461300000), set["cancelledAt"])
}

func TestToAddress(t *testing.T) {
	assert.Nil(t, toAddress(nil))

	addr := toAddress(&dto.ShopifyAddress{Name: "Jane", City: "Austin", Country: "US"})
	require.NotNil(t, addr)
	assert.Equal(t, "Jane", addr.Name)
	assert.Equal(t, "Austin", addr.City)
	assert.Equal(t, "US", addr.Country)
}
