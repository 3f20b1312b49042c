package handler

import (
	"fmt"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderHandler xử lý các thao tác đọc trên đơn hàng.
// Đơn hàng vào hệ thống qua webhook, không có API tạo/sửa tay.
type OrderHandler struct {
	*BaseHandler[models.Order, dto.OrderQueryInput, dto.OrderQueryInput]
	orderService    *services.OrderService
	lineItemService *services.LineItemService
}

// NewOrderHandler tạo mới OrderHandler
func NewOrderHandler(catalog *services.Catalog) (*OrderHandler, error) {
	orderService, err := services.NewOrderService(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}

	lineItemService, err := services.NewLineItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create line item service: %v", err)
	}

	return &OrderHandler{
		BaseHandler:     NewBaseHandler[models.Order, dto.OrderQueryInput, dto.OrderQueryInput](orderService),
		orderService:    orderService,
		lineItemService: lineItemService,
	}, nil
}

// ListOrders liệt kê đơn hàng, mới nhất trước: GET /orders
func (h *OrderHandler) ListOrders(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.OrderQueryInput
		if err := h.ParseRequestQuery(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter := bson.M{}
		if input.SourceOrderID != "" {
			filter["sourceOrderId"] = input.SourceOrderID
		}

		page, limit := normalizePaging(input.Page, input.Limit)
		opts := options.Find().SetSort(bson.D{{Key: "sourceCreatedAt", Value: -1}})
		data, err := h.orderService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// GetOrderWithItems trả về một đơn kèm toàn bộ line item của nó:
// GET /orders/:sourceOrderId
func (h *OrderHandler) GetOrderWithItems(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sourceOrderID := c.Params("sourceOrderId")

		order, err := h.orderService.FindBySourceOrderId(c.Context(), sourceOrderID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
		items, err := h.lineItemService.Find(c.Context(), bson.M{"sourceOrderId": sourceOrderID}, opts)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, bson.M{
			"order":     order,
			"lineItems": items,
		}, nil)
		return nil
	})
}
