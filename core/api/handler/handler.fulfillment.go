package handler

import (
	"errors"
	"fmt"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"
	"wallet_works/core/common"
	"wallet_works/core/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FulfillmentHandler xử lý các thao tác fulfillment trên line item:
// nhận việc, bắt đầu làm, hoàn thành, hủy, phân loại lại
type FulfillmentHandler struct {
	*BaseHandler[models.LineItem, dto.ClaimManyInput, dto.ClassifyInput]
	lineItemService *services.LineItemService
	catalog         *services.Catalog
}

// NewFulfillmentHandler tạo mới FulfillmentHandler
func NewFulfillmentHandler(catalog *services.Catalog) (*FulfillmentHandler, error) {
	lineItemService, err := services.NewLineItemService()
	if err != nil {
		return nil, fmt.Errorf("failed to create line item service: %v", err)
	}

	return &FulfillmentHandler{
		BaseHandler:     NewBaseHandler[models.LineItem, dto.ClaimManyInput, dto.ClassifyInput](lineItemService),
		lineItemService: lineItemService,
		catalog:         catalog,
	}, nil
}

// staffFromContext lấy định danh staff mà middleware auth đã set vào Locals
func staffFromContext(c fiber.Ctx) (string, string, error) {
	staffID, _ := c.Locals("staffId").(string)
	staffName, _ := c.Locals("staffName").(string)
	if staffID == "" {
		return "", "", common.ErrTokenMissing
	}
	return staffID, staffName, nil
}

// Claim nhận việc một line item: POST /line-items/:id/claim
func (h *FulfillmentHandler) Claim(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		staffID, staffName, err := staffFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item, err := h.lineItemService.Claim(c.Context(), id, staffID, staffName)
		if err == nil {
			logger.LogFulfillment("claim", id.Hex(), c, map[string]interface{}{
				"staffId": staffID,
			})
		}
		h.HandleResponse(c, item, err)
		return nil
	})
}

// ClaimMany nhận việc nhiều line item: POST /line-items/claim
// Partial success là success: response chứa các item thật sự nhận được.
func (h *FulfillmentHandler) ClaimMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.ClaimManyInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		staffID, staffName, err := staffFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		ids := make([]primitive.ObjectID, 0, len(input.LineItemIDs))
		for _, raw := range input.LineItemIDs {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("ID '%s' không hợp lệ", raw),
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			ids = append(ids, id)
		}

		claimed, err := h.lineItemService.ClaimMany(c.Context(), ids, staffID, staffName)
		h.HandleResponse(c, bson.M{
			"claimed":      claimed,
			"claimedCount": len(claimed),
			"requested":    len(ids),
		}, err)
		return nil
	})
}

// ClaimAll nhận toàn bộ line item pending của một đơn: POST /orders/:sourceOrderId/claim-all
func (h *FulfillmentHandler) ClaimAll(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sourceOrderID := c.Params("sourceOrderId")
		if sourceOrderID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		staffID, staffName, err := staffFromContext(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		claimed, err := h.lineItemService.ClaimAll(c.Context(), sourceOrderID, staffID, staffName)
		h.HandleResponse(c, bson.M{
			"claimed":      claimed,
			"claimedCount": len(claimed),
		}, err)
		return nil
	})
}

// Start bắt đầu làm một line item đã nhận: POST /line-items/:id/start
func (h *FulfillmentHandler) Start(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item, err := h.lineItemService.StartWork(c.Context(), id)
		h.HandleResponse(c, item, err)
		return nil
	})
}

// Complete hoàn thành một line item: POST /line-items/:id/complete
// Nếu cộng điểm thất bại, item vẫn completed; response báo warning
// thay vì lỗi để client không retry completion.
func (h *FulfillmentHandler) Complete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item, err := h.lineItemService.Complete(c.Context(), id)
		if err != nil && errors.Is(err, common.ErrLedgerCredit) {
			logger.LogFulfillment("complete", id.Hex(), c, map[string]interface{}{
				"pointsCredited": false,
			})
			JSONResponse(c, common.StatusOK, fiber.Map{
				"code":    common.StatusOK,
				"message": "Hoàn thành đã ghi nhận nhưng cộng điểm thất bại",
				"data":    item,
				"warning": common.ErrCodeFulfillmentLedger.Code,
				"status":  "success",
			})
			return nil
		}
		if err == nil {
			logger.LogFulfillment("complete", id.Hex(), c, map[string]interface{}{
				"points": item.Points,
			})
		}
		h.HandleResponse(c, item, err)
		return nil
	})
}

// Void hủy một line item còn pending: POST /line-items/:id/void
func (h *FulfillmentHandler) Void(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		item, err := h.lineItemService.Void(c.Context(), id)
		if err == nil {
			logger.LogFulfillment("void", id.Hex(), c, nil)
		}
		h.HandleResponse(c, item, err)
		return nil
	})
}

// Classify phân loại lại thủ công một line item: POST /line-items/:id/classify
// Dùng cho các item needsReview mà classifier không tự xác định được.
func (h *FulfillmentHandler) Classify(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := ParseObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input dto.ClassifyInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// Điểm lấy theo catalog trừ khi input ghi đè
		points := 0
		label := ""
		if input.WalletType != models.ItemTypeAccessory {
			entry, found := h.catalog.EntryFor(input.WalletType)
			if !found {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeFulfillmentClassify,
					fmt.Sprintf("Loại ví '%s' không có trong catalog", input.WalletType),
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
			points = entry.Points
			label = entry.Label
		}
		if input.Points != nil {
			points = *input.Points
		}

		item, err := h.lineItemService.Reclassify(c.Context(), id, input.WalletType, points, label)
		if err == nil {
			logger.LogFulfillment("classify", id.Hex(), c, map[string]interface{}{
				"walletType": input.WalletType,
				"points":     points,
			})
		}
		h.HandleResponse(c, item, err)
		return nil
	})
}

// ListLineItems liệt kê line item theo work queue filter: GET /line-items
func (h *FulfillmentHandler) ListLineItems(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input dto.LineItemQueryInput
		if err := h.ParseRequestQuery(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter := bson.M{}
		if input.Status != "" {
			filter["status"] = input.Status
		}
		if input.ClaimedBy != "" {
			filter["claimedBy"] = input.ClaimedBy
		}
		if input.OrderID != "" {
			filter["sourceOrderId"] = input.OrderID
		}

		page, limit := normalizePaging(input.Page, input.Limit)
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
		data, err := h.lineItemService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// ListNeedsReview liệt kê các line item chờ phân loại tay: GET /line-items/needs-review
func (h *FulfillmentHandler) ListNeedsReview(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := ParsePagination(c)
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
		data, err := h.lineItemService.FindWithPagination(c.Context(), bson.M{"needsReview": true}, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// normalizePaging đưa page/limit từ query input về giá trị hợp lệ
func normalizePaging(page, limit int64) (int64, int64) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}
