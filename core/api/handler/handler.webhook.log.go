package handler

import (
	"fmt"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WebhookLogHandler xử lý các route đọc webhook log (đối soát ingest).
// Kế thừa từ BaseHandler để có sẵn các method tìm kiếm theo filter.
type WebhookLogHandler struct {
	*BaseHandler[models.WebhookLog, models.WebhookLog, models.WebhookLog]
	webhookLogService *services.WebhookLogService
}

// NewWebhookLogHandler tạo mới WebhookLogHandler
// Returns:
//   - *WebhookLogHandler: Instance mới của WebhookLogHandler
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewWebhookLogHandler() (*WebhookLogHandler, error) {
	webhookLogService, err := services.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %w", err)
	}

	return &WebhookLogHandler{
		BaseHandler:       NewBaseHandler[models.WebhookLog, models.WebhookLog, models.WebhookLog](webhookLogService.BaseServiceMongoImpl),
		webhookLogService: webhookLogService,
	}, nil
}

// ListFailed liệt kê các webhook đã nhận nhưng xử lý thất bại:
// GET /webhook-logs/failed
func (h *WebhookLogHandler) ListFailed(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := ParsePagination(c)
		filter := bson.M{"processed": false, "processError": bson.M{"$ne": ""}}
		opts := options.Find().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
		data, err := h.webhookLogService.FindWithPagination(c.Context(), filter, page, limit, opts)
		h.HandleResponse(c, data, err)
		return nil
	})
}
