package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
	"wallet_works/core/global"
	"wallet_works/core/logger"
	"wallet_works/core/utility"
)

// OrderService là cấu trúc chứa các phương thức ingest và truy vấn đơn hàng
type OrderService struct {
	*BaseServiceMongoImpl[models.Order]
	lineItemService *LineItemService
	catalog         *Catalog
}

// NewOrderService tạo mới OrderService với catalog phân loại đã nạp
func NewOrderService(catalog *Catalog) (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	lineItemService, err := NewLineItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create line item service: %v", err)
	}

	return &OrderService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.Order](orderCollection),
		lineItemService:      lineItemService,
		catalog:              catalog,
	}, nil
}

// validatePayload kiểm tra các identifier bắt buộc của payload.
// Thiếu ID đơn hoặc ID line item là payload hỏng: từ chối ngay,
// không đoán mò để tránh ghi dữ liệu sai khóa idempotency.
func validatePayload(payload dto.ShopifyOrderPayload) error {
	if payload.ID == 0 {
		return common.ErrMalformedPayload
	}
	for _, item := range payload.LineItems {
		if item.ID == 0 {
			return common.ErrMalformedPayload
		}
	}
	return nil
}

// unknownOrderer là tên fallback khi payload không mang tên người đặt
const unknownOrderer = "Unknown"

// ordererName build tên người đặt theo chuỗi fallback:
// customer name -> billing address name -> "Unknown"
func ordererName(payload dto.ShopifyOrderPayload) string {
	var customerName string
	if payload.Customer != nil {
		customerName = strings.TrimSpace(payload.Customer.FirstName + " " + payload.Customer.LastName)
	}
	var billingName string
	if payload.BillingAddress != nil {
		billingName = payload.BillingAddress.Name
	}
	return utility.FirstNonEmpty(customerName, billingName, unknownOrderer)
}

// sourceIDString format một ID số của Shopify thành chuỗi; 0 nghĩa là vắng
func sourceIDString(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// toAddress chuyển address DTO sang model; nil giữ nguyên nil
func toAddress(a *dto.ShopifyAddress) *models.Address {
	if a == nil {
		return nil
	}
	return &models.Address{
		Name:     a.Name,
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		Province: a.Province,
		Zip:      a.Zip,
		Country:  a.Country,
		Phone:    a.Phone,
	}
}

// BuildOrderRecords phân loại line items và build Order + LineItems từ payload.
// Pure: không chạm storage, dùng cho cả đường create và test.
func BuildOrderRecords(payload dto.ShopifyOrderPayload, catalog *Catalog) (models.Order, []models.LineItem) {
	sourceOrderID := strconv.FormatInt(payload.ID, 10)

	var lineItems []models.LineItem
	var walletTypeLabels []string
	totalWallets := 0
	totalAccessories := 0
	totalPoints := 0

	for _, item := range payload.LineItems {
		props := make([]models.PropertyKV, 0, len(item.Properties))
		for _, p := range item.Properties {
			props = append(props, models.PropertyKV{Name: p.Name, Value: p.Value})
		}

		cls := Classify(item.Title, props, catalog)

		if cls.ItemType == models.ItemTypeWallet {
			totalWallets++
			totalPoints += cls.Points
			if cls.WalletTypeLabel != "" {
				walletTypeLabels = append(walletTypeLabels, cls.WalletTypeLabel)
			}
		} else {
			totalAccessories++
		}

		lineItems = append(lineItems, models.LineItem{
			SourceOrderID:    sourceOrderID,
			SourceLineItemID: strconv.FormatInt(item.ID, 10),
			ProductID:        sourceIDString(item.ProductID),
			VariantID:        sourceIDString(item.VariantID),
			SourceLineItem:   item.Raw,
			ProductName:      item.Title,
			VariantTitle:     item.VariantTitle,
			SKU:              item.SKU,
			Quantity:         item.Quantity,
			Price:            utility.ParseMoney(item.Price),
			ItemType:         cls.ItemType,
			WalletType:       cls.WalletType,
			Points:           cls.Points,
			NeedsReview:      cls.NeedsReview,
			Attributes:       cls.Attributes,
			Status:           models.StatusPending,
		})
	}

	order := models.Order{
		SourceOrderID:     sourceOrderID,
		Status:            models.StatusPending,
		OrderNumber:       payload.Name,
		SourceCreatedAt:   utility.ParseSourceTime(payload.CreatedAt),
		CustomerName:      ordererName(payload),
		Email:             payload.Email,
		FinancialStatus:   payload.FinancialStatus,
		FulfillmentStatus: payload.FulfillmentStatus,
		Tags:              utility.SplitTags(payload.Tags),
		CancelledAt:       utility.ParseSourceTime(payload.CancelledAt),
		ShippingAddress:   toAddress(payload.ShippingAddress),
		BillingAddress:    toAddress(payload.BillingAddress),
		TotalPrice:        utility.ParseMoney(payload.TotalPrice),
		Currency:          payload.Currency,
		TotalWallets:      totalWallets,
		TotalAccessories:  totalAccessories,
		WalletTypeSummary: utility.JoinDistinct(walletTypeLabels),
		Points:            totalPoints,
	}

	return order, lineItems
}

// IngestOrderCreated xử lý webhook orders/create: phân loại, lưu đơn,
// lưu toàn bộ line items. Webhook duplicate (trùng sourceOrderId) được
// chuyển sang đường update thay vì báo lỗi.
func (s *OrderService) IngestOrderCreated(ctx context.Context, payload dto.ShopifyOrderPayload) (models.Order, error) {
	var zero models.Order

	if err := validatePayload(payload); err != nil {
		return zero, err
	}

	order, lineItems := BuildOrderRecords(payload, s.catalog)

	created, err := s.InsertOne(ctx, order)
	if err != nil {
		// Unique index trên sourceOrderId phát hiện duplicate: webhook
		// redelivery hoặc create đến sau updated. Route sang update.
		if errors.Is(err, common.ErrMongoDuplicate) || errors.Is(err, common.ErrDuplicate) {
			logger.WithModuleAndCollection("webhook", global.MongoDB_ColNames.Orders).
				WithField("sourceOrderId", order.SourceOrderID).
				Info("📦 [INGEST] Đơn đã tồn tại, chuyển sang đường update")
			return s.IngestOrderUpdated(ctx, payload)
		}
		return zero, err
	}

	for i := range lineItems {
		lineItems[i].OrderID = created.ID
	}

	if len(lineItems) > 0 {
		if _, err := s.lineItemService.InsertMany(ctx, lineItems); err != nil {
			// Không retry tại đây: webhook redelivery của nguồn là cơ chế
			// retry, và đường duplicate-create phía trên xử lý lần gửi lại
			return zero, err
		}
	}

	logger.WithModuleAndCollection("webhook", global.MongoDB_ColNames.Orders).
		WithField("sourceOrderId", created.SourceOrderID).
		WithField("totalWallets", created.TotalWallets).
		WithField("totalAccessories", created.TotalAccessories).
		WithField("points", created.Points).
		Info("📦 [INGEST] Đã ingest đơn hàng mới")

	return created, nil
}

// buildOrderUpdateSet build map $set cho đường orders/updated. Field vắng
// trong payload không được ghi đè giá trị đã lưu; riêng tên người đặt chỉ
// ghi khi payload thật sự mang tên, tránh thoái hóa tên tốt thành "Unknown".
func buildOrderUpdateSet(payload dto.ShopifyOrderPayload, cancelledAt int64) map[string]interface{} {
	set := map[string]interface{}{
		"financialStatus":   payload.FinancialStatus,
		"fulfillmentStatus": payload.FulfillmentStatus,
		"tags":              utility.SplitTags(payload.Tags),
	}
	if name := ordererName(payload); name != unknownOrderer {
		set["customerName"] = name
	}
	if payload.Email != "" {
		set["email"] = payload.Email
	}
	if payload.TotalPrice != "" {
		set["totalPrice"] = utility.ParseMoney(payload.TotalPrice)
	}
	if addr := toAddress(payload.ShippingAddress); addr != nil {
		set["shippingAddress"] = addr
	}
	if addr := toAddress(payload.BillingAddress); addr != nil {
		set["billingAddress"] = addr
	}
	if cancelledAt > 0 {
		set["cancelledAt"] = cancelledAt
	}
	return set
}

// IngestOrderUpdated xử lý webhook orders/updated: refresh metadata nguồn.
// Đơn chưa tồn tại thì fallback sang create (updated là superset của create).
// Đơn vừa bị hủy thì void các line item còn pending; item đã nhận việc
// giữ nguyên để xưởng tự quyết.
func (s *OrderService) IngestOrderUpdated(ctx context.Context, payload dto.ShopifyOrderPayload) (models.Order, error) {
	var zero models.Order

	if err := validatePayload(payload); err != nil {
		return zero, err
	}

	sourceOrderID := strconv.FormatInt(payload.ID, 10)

	existing, err := s.FindOne(ctx, bson.M{"sourceOrderId": sourceOrderID}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return s.IngestOrderCreated(ctx, payload)
		}
		return zero, err
	}

	// Lần create trước có thể chết giữa chừng: đơn đã ghi nhưng line item
	// chưa. Redelivery của nguồn rơi vào đường update nên backfill tại đây,
	// nếu không đơn vĩnh viễn không có line item nào.
	if len(payload.LineItems) > 0 {
		count, err := s.lineItemService.CountDocuments(ctx, bson.M{"sourceOrderId": sourceOrderID})
		if err != nil {
			return zero, err
		}
		if count == 0 {
			_, lineItems := BuildOrderRecords(payload, s.catalog)
			for i := range lineItems {
				lineItems[i].OrderID = existing.ID
			}
			if _, err := s.lineItemService.InsertMany(ctx, lineItems); err != nil {
				return zero, err
			}
			logger.WithModuleAndCollection("webhook", global.MongoDB_ColNames.LineItems).
				WithField("sourceOrderId", sourceOrderID).
				WithField("count", len(lineItems)).
				Info("📦 [INGEST] Backfill line items cho đơn thiếu sau lần ingest dở dang")
		}
	}

	cancelledAt := utility.ParseSourceTime(payload.CancelledAt)
	set := buildOrderUpdateSet(payload, cancelledAt)

	updated, err := s.UpdateOne(ctx, bson.M{"sourceOrderId": sourceOrderID}, &UpdateData{Set: set}, nil)
	if err != nil {
		return zero, err
	}

	// Hủy đơn mới xuất hiện trong payload này: void các item còn pending
	if cancelledAt > 0 && existing.CancelledAt == 0 {
		voided, err := s.lineItemService.VoidPendingByOrder(ctx, sourceOrderID)
		if err != nil {
			return zero, err
		}
		logger.WithModuleAndCollection("webhook", global.MongoDB_ColNames.LineItems).
			WithField("sourceOrderId", sourceOrderID).
			WithField("voidedCount", voided).
			Info("📦 [INGEST] Đơn bị hủy, đã void các line item pending")
	}

	return updated, nil
}

// FindBySourceOrderId tìm đơn theo ID bên nguồn
func (s *OrderService) FindBySourceOrderId(ctx context.Context, sourceOrderID string) (models.Order, error) {
	return s.FindOne(ctx, bson.M{"sourceOrderId": sourceOrderID}, nil)
}
