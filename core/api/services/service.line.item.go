package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
	"wallet_works/core/global"
	"wallet_works/core/logger"
)

// LineItemService là cấu trúc chứa state machine fulfillment của line item.
// Mọi chuyển trạng thái đi qua FindOneAndUpdate có điều kiện trạng thái
// trong filter: nhiều staff cùng bấm claim thì đúng một người thắng,
// không cần lock ngoài.
type LineItemService struct {
	*BaseServiceMongoImpl[models.LineItem]
	dailyPointsService *DailyPointsService
}

// NewLineItemService tạo mới LineItemService
func NewLineItemService() (*LineItemService, error) {
	lineItemCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.LineItems)
	if !exist {
		return nil, fmt.Errorf("failed to get line_items collection: %v", common.ErrNotFound)
	}

	dailyPointsService, err := NewDailyPointsService()
	if err != nil {
		return nil, fmt.Errorf("failed to create daily points service: %v", err)
	}

	return &LineItemService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.LineItem](lineItemCollection),
		dailyPointsService:   dailyPointsService,
	}, nil
}

// ====================================
// FILTER / UPDATE BUILDERS
// ====================================
// Tách riêng để test không cần Mongo.

// BuildClaimFilter build filter nguyên tử cho claim: chỉ khớp khi
// item còn pending
func BuildClaimFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "status": models.StatusPending}
}

// BuildClaimUpdate build update cho claim
func BuildClaimUpdate(staffID, staffName string, now int64) *UpdateData {
	return &UpdateData{Set: map[string]interface{}{
		"status":        models.StatusClaimed,
		"claimedBy":     staffID,
		"claimedByName": staffName,
		"claimedAt":     now,
	}}
}

// BuildStartFilter build filter cho start: chỉ từ claimed
func BuildStartFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "status": models.StatusClaimed}
}

// BuildCompleteFilter build filter cho complete: từ claimed hoặc in_progress
func BuildCompleteFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "status": bson.M{"$in": []string{models.StatusClaimed, models.StatusInProgress}}}
}

// BuildVoidFilter build filter cho void: chỉ từ pending
func BuildVoidFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "status": models.StatusPending}
}

// returnAfter là options chung: trả về document SAU update
func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// ====================================
// STATE MACHINE
// ====================================

// Claim nhận việc một line item: pending -> claimed, nguyên tử.
// Thua race (item đã bị nhận) trả về ErrAlreadyClaimed; item không
// tồn tại trả về ErrNotFound. Hai trường hợp được phân biệt bằng một
// lần đọc lại sau khi update trượt.
func (s *LineItemService) Claim(ctx context.Context, id primitive.ObjectID, staffID, staffName string) (models.LineItem, error) {
	var zero models.LineItem

	now := time.Now().UnixMilli()
	claimed, err := s.FindOneAndUpdate(ctx, BuildClaimFilter(id), BuildClaimUpdate(staffID, staffName, now), returnAfter())
	if err == nil {
		logger.WithModuleAndCollection("fulfillment", global.MongoDB_ColNames.LineItems).
			WithField("lineItemId", id.Hex()).
			WithField("staffId", staffID).
			Info("🔧 [FULFILLMENT] Đã nhận việc line item")
		return claimed, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	// Update trượt: phân biệt "đã bị nhận" với "không tồn tại"
	existing, findErr := s.FindOne(ctx, bson.M{"_id": id}, nil)
	if findErr != nil {
		return zero, findErr
	}
	if existing.Status != models.StatusPending {
		return zero, common.ErrAlreadyClaimed
	}
	// Hiếm: item quay lại pending giữa hai lần đọc; trả lỗi race cho
	// client thử lại
	return zero, common.ErrAlreadyClaimed
}

// ClaimMany nhận việc nhiều line item; mỗi item là một claim nguyên tử
// riêng. Trả về danh sách các item THẬT SỰ chuyển trạng thái; partial
// success là success, item thua race bị bỏ qua lặng lẽ.
func (s *LineItemService) ClaimMany(ctx context.Context, ids []primitive.ObjectID, staffID, staffName string) ([]models.LineItem, error) {
	claimed := make([]models.LineItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.Claim(ctx, id, staffID, staffName)
		if err != nil {
			if errors.Is(err, common.ErrAlreadyClaimed) || errors.Is(err, common.ErrNotFound) {
				continue
			}
			// Lỗi hạ tầng thì dừng: trả về những item đã nhận được kèm lỗi
			return claimed, err
		}
		claimed = append(claimed, item)
	}
	return claimed, nil
}

// ClaimAll nhận toàn bộ line item còn pending của một đơn hàng
func (s *LineItemService) ClaimAll(ctx context.Context, sourceOrderID string, staffID, staffName string) ([]models.LineItem, error) {
	pending, err := s.Find(ctx, bson.M{"sourceOrderId": sourceOrderID, "status": models.StatusPending}, nil)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(pending))
	for _, item := range pending {
		ids = append(ids, item.ID)
	}
	return s.ClaimMany(ctx, ids, staffID, staffName)
}

// StartWork chuyển claimed -> in_progress. Trạng thái khác trả về
// ErrInvalidTransition.
func (s *LineItemService) StartWork(ctx context.Context, id primitive.ObjectID) (models.LineItem, error) {
	var zero models.LineItem

	now := time.Now().UnixMilli()
	update := &UpdateData{Set: map[string]interface{}{
		"status":    models.StatusInProgress,
		"startedAt": now,
	}}

	started, err := s.FindOneAndUpdate(ctx, BuildStartFilter(id), update, returnAfter())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.transitionErrorFor(ctx, id)
		}
		return zero, err
	}
	return started, nil
}

// Complete chuyển {claimed, in_progress} -> completed và cộng điểm vào
// sổ ngày của người đã nhận việc. Completion là sự thật gốc: nếu cộng
// điểm thất bại, item VẪN completed và caller nhận item kèm
// ErrLedgerCredit để boundary báo warning (đối soát tay).
func (s *LineItemService) Complete(ctx context.Context, id primitive.ObjectID) (models.LineItem, error) {
	var zero models.LineItem

	now := time.Now().UnixMilli()
	update := &UpdateData{Set: map[string]interface{}{
		"status":      models.StatusCompleted,
		"completedAt": now,
	}}

	completed, err := s.FindOneAndUpdate(ctx, BuildCompleteFilter(id), update, returnAfter())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.transitionErrorFor(ctx, id)
		}
		return zero, err
	}

	logger.WithModuleAndCollection("fulfillment", global.MongoDB_ColNames.LineItems).
		WithField("lineItemId", id.Hex()).
		WithField("staffId", completed.ClaimedBy).
		WithField("points", completed.Points).
		Info("🔧 [FULFILLMENT] Đã hoàn thành line item")

	// Phụ kiện mang điểm 0 vĩnh viễn: hoàn thành không cộng gì
	if completed.Points > 0 && completed.ClaimedBy != "" {
		if err := s.dailyPointsService.CreditCompletion(ctx, completed.ClaimedBy, completed.ClaimedByName, completed.Points); err != nil {
			logger.WithModuleAndCollection("points", global.MongoDB_ColNames.DailyPoints).
				WithError(err).
				WithField("lineItemId", id.Hex()).
				WithField("staffId", completed.ClaimedBy).
				Error("🎯 [POINTS] Cộng điểm thất bại sau completion")
			return completed, common.ErrLedgerCredit
		}
	}

	return completed, nil
}

// Void hủy một line item còn pending (đơn bị hủy hoặc operator xử lý).
// Item đã có người nhận không bị void tự động.
func (s *LineItemService) Void(ctx context.Context, id primitive.ObjectID) (models.LineItem, error) {
	var zero models.LineItem

	now := time.Now().UnixMilli()
	update := &UpdateData{Set: map[string]interface{}{
		"status":   models.StatusVoid,
		"voidedAt": now,
	}}

	voided, err := s.FindOneAndUpdate(ctx, BuildVoidFilter(id), update, returnAfter())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, s.transitionErrorFor(ctx, id)
		}
		return zero, err
	}
	return voided, nil
}

// VoidPendingByOrder void toàn bộ line item pending của một đơn
// (đường hủy đơn từ webhook orders/updated). Trả về số item đã void.
func (s *LineItemService) VoidPendingByOrder(ctx context.Context, sourceOrderID string) (int64, error) {
	now := time.Now().UnixMilli()
	filter := bson.M{"sourceOrderId": sourceOrderID, "status": models.StatusPending}
	update := &UpdateData{Set: map[string]interface{}{
		"status":   models.StatusVoid,
		"voidedAt": now,
	}}
	return s.UpdateMany(ctx, filter, update, nil)
}

// Reclassify gán loại ví / điểm cho một item NeedsReview (operator
// remediation). walletType "accessory" chuyển item thành phụ kiện điểm 0.
func (s *LineItemService) Reclassify(ctx context.Context, id primitive.ObjectID, walletType string, points int, label string) (models.LineItem, error) {
	set := map[string]interface{}{
		"needsReview": false,
	}
	if walletType == models.ItemTypeAccessory {
		set["itemType"] = models.ItemTypeAccessory
		set["walletType"] = ""
		set["points"] = 0
	} else {
		set["itemType"] = models.ItemTypeWallet
		set["walletType"] = walletType
		set["points"] = points
	}

	item, err := s.FindOneAndUpdate(ctx, bson.M{"_id": id}, &UpdateData{Set: set}, returnAfter())
	if err != nil {
		return item, err
	}

	logger.WithModuleAndCollection("fulfillment", global.MongoDB_ColNames.LineItems).
		WithField("lineItemId", id.Hex()).
		WithField("walletType", walletType).
		WithField("label", label).
		Info("🔧 [FULFILLMENT] Đã phân loại lại line item")
	return item, nil
}

// transitionErrorFor phân biệt lỗi khi conditional update trượt:
// item không tồn tại trả về ErrNotFound, tồn tại nhưng sai trạng thái
// trả về ErrInvalidTransition.
func (s *LineItemService) transitionErrorFor(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		return err
	}
	return common.ErrInvalidTransition
}
