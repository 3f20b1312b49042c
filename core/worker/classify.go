// Package worker chứa các background worker phản ứng theo sự kiện dữ liệu.
package worker

import (
	"context"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"
	"wallet_works/core/events"
	"wallet_works/core/global"
	"wallet_works/core/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BuildUnclassifiedFilter khớp một line item chưa có kết quả phân loại.
// InsertOne loại bỏ field chuỗi rỗng trước khi ghi, nên itemType của bản
// ghi chưa phân loại có thể VẮNG MẶT thay vì bằng ""; $in với nil khớp cả
// field thiếu lẫn field null.
func BuildUnclassifiedFilter(id primitive.ObjectID) bson.M {
	return bson.M{
		"_id":      id,
		"itemType": bson.M{"$in": []interface{}{"", nil}},
	}
}

// BuildClassificationUpdate build update ghi kết quả phân loại, bao gồm
// cả attributes trích xuất từ properties
func BuildClassificationUpdate(cls services.Classification) *services.UpdateData {
	return &services.UpdateData{Set: map[string]interface{}{
		"itemType":    cls.ItemType,
		"walletType":  cls.WalletType,
		"points":      cls.Points,
		"needsReview": cls.NeedsReview,
		"attributes":  cls.Attributes,
	}}
}

// StartClassifyWorker đăng ký worker phân loại các line item được chèn
// ngoài pipeline webhook (nhập tay, import). Webhook ingest tự phân loại
// trước khi ghi nên không đi qua đường này; worker chỉ xử lý các bản
// ghi chèn vào với itemType còn trống.
func StartClassifyWorker(catalog *services.Catalog) error {
	lineItemService, err := services.NewLineItemService()
	if err != nil {
		return err
	}

	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if e.CollectionName != global.MongoDB_ColNames.LineItems || e.Operation != events.OpInsert {
			return
		}

		item, ok := e.Document.(models.LineItem)
		if !ok || item.ItemType != "" {
			return
		}

		classification := services.Classify(item.ProductName, item.Attributes.Extra, catalog)

		update := BuildClassificationUpdate(classification)
		if _, err := lineItemService.UpdateOne(ctx, BuildUnclassifiedFilter(item.ID), update, nil); err != nil {
			logger.WithModuleAndCollection("worker", global.MongoDB_ColNames.LineItems).
				WithError(err).
				WithField("lineItemId", item.ID.Hex()).
				Warn("⚙️ [WORKER] Không thể phân loại line item chèn ngoài pipeline")
			return
		}

		logger.WithModuleAndCollection("worker", global.MongoDB_ColNames.LineItems).
			WithField("lineItemId", item.ID.Hex()).
			WithField("itemType", classification.ItemType).
			Info("⚙️ [WORKER] Đã phân loại line item chèn ngoài pipeline")
	})

	logger.GetAppLogger().Info("⚙️ [WORKER] Classify worker registered")
	return nil
}
