package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"wallet_works/core/api/dto"
	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"
	"wallet_works/core/common"
	"wallet_works/core/global"
	"wallet_works/core/logger"

	"github.com/gofiber/fiber/v3"
)

// Các header Shopify gửi kèm mỗi webhook
const (
	HeaderShopifyHmac  = "X-Shopify-Hmac-Sha256"
	HeaderShopifyTopic = "X-Shopify-Topic"
)

// ShopifyWebhookHandler xử lý các webhook từ Shopify
type ShopifyWebhookHandler struct {
	orderService      *services.OrderService
	webhookLogService *services.WebhookLogService
	secret            string
}

// NewShopifyWebhookHandler tạo mới ShopifyWebhookHandler
// Returns:
//   - *ShopifyWebhookHandler: Instance mới của ShopifyWebhookHandler
//   - error: Lỗi nếu có trong quá trình khởi tạo
func NewShopifyWebhookHandler(catalog *services.Catalog) (*ShopifyWebhookHandler, error) {
	orderService, err := services.NewOrderService(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}

	webhookLogService, err := services.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %v", err)
	}

	return &ShopifyWebhookHandler{
		orderService:      orderService,
		webhookLogService: webhookLogService,
		secret:            global.MongoDB_ServerConfig.ShopifyWebhookSecret,
	}, nil
}

// VerifyShopifySignature verify chữ ký HMAC-SHA256 của webhook Shopify.
// Shopify ký RAW BODY bằng shared secret rồi encode base64 vào header.
// So sánh bằng hmac.Equal để tránh timing attack.
func VerifyShopifySignature(rawBody []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// HandleShopifyWebhook xử lý webhook từ Shopify
// Endpoint này nhận webhook về các topics:
// - orders/create: Đơn hàng mới được tạo
// - orders/updated: Đơn hàng được cập nhật (bao gồm cả hủy đơn)
//
// Tham số:
//   - c: Fiber context chứa request body từ Shopify
//
// Trả về:
//   - error: Lỗi nếu có trong quá trình xử lý
//
// Lưu ý:
//   - Endpoint này KHÔNG cần authentication middleware (Shopify gọi trực tiếp)
//   - Chữ ký HMAC được verify TRƯỚC khi đọc payload; sai chữ ký trả 401
//     và không đụng vào database
//   - Sau khi qua cửa chữ ký, lỗi xử lý trả về 200 để Shopify không retry
//     vô hạn; bằng chứng nằm trong webhook log
func (h *ShopifyWebhookHandler) HandleShopifyWebhook(c fiber.Ctx) error {
	return SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()

		// Lưu raw body trước khi parse (chữ ký ký trên raw body)
		rawBody := c.Body()
		signature := c.Get(HeaderShopifyHmac)
		topic := c.Get(HeaderShopifyTopic)

		// Verify chữ ký trước mọi thứ khác
		if !VerifyShopifySignature(rawBody, signature, h.secret) {
			log.WithField("topic", topic).Warn("🛒 [SHOPIFY WEBHOOK] Chữ ký HMAC không hợp lệ")
			c.Status(common.StatusUnauthorized).JSON(fiber.Map{
				"code":    common.ErrCodeAuthSignature.Code,
				"message": "Webhook signature không hợp lệ",
				"status":  "error",
			})
			return nil
		}

		// Parse request body
		var payload dto.ShopifyOrderPayload
		if err := c.Bind().Body(&payload); err != nil {
			log.WithError(err).Warn("🛒 [SHOPIFY WEBHOOK] Không thể parse request body")
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code":    common.ErrCodeValidationFormat.Code,
				"message": "Dữ liệu gửi lên không đúng định dạng JSON",
				"status":  "error",
			})
			return nil
		}

		// Lưu webhook log để đối soát (trước khi xử lý)
		ctx := c.Context()
		webhookLog, logErr := h.saveWebhookLog(c, topic, payload.IDString(), string(rawBody))
		if logErr != nil {
			log.WithError(logErr).Warn("🛒 [SHOPIFY WEBHOOK] Không thể lưu webhook log")
		}

		log.WithFields(map[string]interface{}{
			"topic":         topic,
			"sourceOrderId": payload.IDString(),
			"orderNumber":   payload.Name,
		}).Info("🛒 [SHOPIFY WEBHOOK] Nhận webhook từ Shopify")

		// Xử lý webhook dựa trên topic
		var processErr error
		switch topic {
		case "orders/create":
			_, processErr = h.orderService.IngestOrderCreated(ctx, payload)
		case "orders/updated":
			_, processErr = h.orderService.IngestOrderUpdated(ctx, payload)
		default:
			log.WithField("topic", topic).Warn("🛒 [SHOPIFY WEBHOOK] Topic chưa được xử lý")
		}

		// Payload hỏng thì trả 400 để lộ lỗi cấu hình phía gửi sớm
		if processErr != nil && errors.Is(processErr, common.ErrMalformedPayload) {
			if webhookLog != nil {
				_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, false, processErr.Error())
			}
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code":    common.ErrCodeValidationFormat.Code,
				"message": "Payload webhook không đúng định dạng",
				"status":  "error",
			})
			return nil
		}

		// Cập nhật trạng thái xử lý trong webhook log
		if webhookLog != nil {
			errorMsg := ""
			if processErr != nil {
				errorMsg = processErr.Error()
			}
			_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, processErr == nil, errorMsg)
		}

		if processErr != nil {
			log.WithError(processErr).WithField("topic", topic).Error("🛒 [SHOPIFY WEBHOOK] Lỗi khi xử lý webhook")
			// Vẫn trả về 200 OK để Shopify không retry
		}

		logger.LogWebhook(topic, payload.IDString(), c, map[string]interface{}{
			"processed": processErr == nil,
		})

		c.Status(common.StatusOK).JSON(fiber.Map{
			"code":    common.StatusOK,
			"message": "Webhook đã được nhận và xử lý",
			"data": fiber.Map{
				"topic":         topic,
				"sourceOrderId": payload.IDString(),
			},
			"status": "success",
		})

		return nil
	})
}

// saveWebhookLog lưu webhook log vào database
func (h *ShopifyWebhookHandler) saveWebhookLog(c fiber.Ctx, topic, sourceOrderID, rawBody string) (*models.WebhookLog, error) {
	headers := make(map[string]string)
	for key, values := range c.GetReqHeaders() {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	webhookLog := models.WebhookLog{
		Source:         "shopify",
		Topic:          topic,
		SourceOrderID:  sourceOrderID,
		RequestHeaders: headers,
		RawBody:        rawBody,
		SignatureValid: true,
		Processed:      false,
		IPAddress:      c.IP(),
		UserAgent:      c.Get("User-Agent"),
		ReceivedAt:     time.Now().UnixMilli(),
	}

	return h.webhookLogService.CreateWebhookLog(c.Context(), webhookLog)
}
