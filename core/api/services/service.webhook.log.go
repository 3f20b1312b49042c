package services

import (
	"context"
	"fmt"
	"time"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
	"wallet_works/core/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WebhookLogService là cấu trúc chứa các phương thức liên quan đến webhook logs
type WebhookLogService struct {
	*BaseServiceMongoImpl[models.WebhookLog]
}

// NewWebhookLogService tạo mới WebhookLogService
func NewWebhookLogService() (*WebhookLogService, error) {
	webhookLogCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebhookLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get webhook_logs collection: %v", common.ErrNotFound)
	}

	return &WebhookLogService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.WebhookLog](webhookLogCollection),
	}, nil
}

// CreateWebhookLog tạo mới webhook log. Log được ghi TRƯỚC khi xử lý
// payload: kể cả khi pipeline ingest lỗi, bằng chứng webhook vẫn còn.
// Tham số:
//   - ctx: Context
//   - log: WebhookLog cần tạo
//
// Trả về:
//   - *models.WebhookLog: Webhook log đã được tạo
//   - error: Lỗi nếu có
func (s *WebhookLogService) CreateWebhookLog(ctx context.Context, log models.WebhookLog) (*models.WebhookLog, error) {
	result, err := s.InsertOne(ctx, log)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateProcessedStatus cập nhật trạng thái đã xử lý của webhook log
// Tham số:
//   - ctx: Context
//   - logID: ID của webhook log
//   - processed: Đã xử lý thành công hay chưa
//   - errorMsg: Thông báo lỗi nếu có
//
// Trả về:
//   - error: Lỗi nếu có
func (s *WebhookLogService) UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error {
	now := time.Now().UnixMilli()

	filter := bson.M{"_id": logID}
	set := bson.M{
		"processed":    processed,
		"processError": errorMsg,
		"updatedAt":    now,
	}
	if processed {
		set["processedAt"] = now
	}

	opts := options.Update()
	_, err := s.collection.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return common.ConvertMongoError(err)
	}

	return nil
}

// FindBySourceOrderId liệt kê các webhook log của một đơn hàng nguồn,
// mới nhất trước. Dùng cho đối soát khi một đơn nghi nhận thiếu event.
func (s *WebhookLogService) FindBySourceOrderId(ctx context.Context, sourceOrderID string) ([]models.WebhookLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "receivedAt", Value: -1}})
	return s.Find(ctx, bson.M{"sourceOrderId": sourceOrderID}, opts)
}
