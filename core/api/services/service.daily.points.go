package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
	"wallet_works/core/global"
	"wallet_works/core/logger"
)

// DateKeyLayout là format của khóa ngày trong sổ điểm
const DateKeyLayout = "2006-01-02"

// DailyPointsService là cấu trúc chứa sổ điểm theo ngày của staff.
// Ghi điểm đi thẳng xuống driver bằng $inc upsert trên cặp khóa
// (staffId, dateKey): không đọc trước khi ghi, hai completion đồng
// thời của cùng một staff không giẫm lên nhau.
type DailyPointsService struct {
	*BaseServiceMongoImpl[models.DailyPoints]
}

// NewDailyPointsService tạo mới DailyPointsService
func NewDailyPointsService() (*DailyPointsService, error) {
	dailyPointsCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DailyPoints)
	if !exist {
		return nil, fmt.Errorf("failed to get daily_points collection: %v", common.ErrNotFound)
	}

	return &DailyPointsService{
		BaseServiceMongoImpl: NewBaseServiceMongo[models.DailyPoints](dailyPointsCollection),
	}, nil
}

// TodayKey trả về khóa ngày hiện tại theo giờ server
func TodayKey() string {
	return time.Now().Format(DateKeyLayout)
}

// BuildCreditUpdate build update nguyên tử cộng điểm cho một completion
func BuildCreditUpdate(staffID, staffName string, points int, now int64) bson.M {
	return bson.M{
		"$inc": bson.M{
			"points":          points,
			"ordersCompleted": 1,
		},
		"$set": bson.M{
			"staffName": staffName,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"staffId":   staffID,
			"createdAt": now,
		},
	}
}

// CreditCompletion cộng điểm cho staff vào ngày hôm nay sau khi một
// line item hoàn thành. Upsert: lần đầu trong ngày tạo row mới, các
// lần sau chỉ $inc.
func (s *DailyPointsService) CreditCompletion(ctx context.Context, staffID, staffName string, points int) error {
	now := time.Now().UnixMilli()
	dateKey := TodayKey()

	filter := bson.M{"staffId": staffID, "dateKey": dateKey}
	update := BuildCreditUpdate(staffID, staffName, points, now)

	_, err := s.Collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		converted := common.ConvertMongoError(err)
		if !errors.Is(converted, common.ErrMongoDuplicate) && !errors.Is(converted, common.ErrDuplicate) {
			return converted
		}
		// Hai credit đầu ngày có thể cùng trượt vào nhánh insert của upsert;
		// kẻ thua nhận E11000 từ index (staffId, dateKey). Lần hai row đã
		// tồn tại nên đi đường $inc thuần.
		if _, err := s.Collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return common.ConvertMongoError(err)
		}
	}

	logger.WithModuleAndCollection("points", global.MongoDB_ColNames.DailyPoints).
		WithField("staffId", staffID).
		WithField("dateKey", dateKey).
		WithField("points", points).
		Info("🎯 [POINTS] Đã cộng điểm completion")
	return nil
}

// GetForStaffOnDate lấy row điểm của một staff trong một ngày
func (s *DailyPointsService) GetForStaffOnDate(ctx context.Context, staffID, dateKey string) (models.DailyPoints, error) {
	return s.FindOne(ctx, bson.M{"staffId": staffID, "dateKey": dateKey}, nil)
}

// GetToday lấy row điểm hôm nay của một staff
func (s *DailyPointsService) GetToday(ctx context.Context, staffID string) (models.DailyPoints, error) {
	return s.GetForStaffOnDate(ctx, staffID, TodayKey())
}

// BuildRangeFilter build filter liệt kê sổ điểm theo staff và khoảng
// ngày. Tham số rỗng bị bỏ qua.
func BuildRangeFilter(staffID, from, to string) bson.M {
	filter := bson.M{}
	if staffID != "" {
		filter["staffId"] = staffID
	}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["dateKey"] = dateRange
	}
	return filter
}

// ListRange liệt kê sổ điểm theo staff và khoảng ngày, mới nhất trước
func (s *DailyPointsService) ListRange(ctx context.Context, staffID, from, to string, page, limit int64) (*models.PaginateResult[models.DailyPoints], error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateKey", Value: -1}, {Key: "staffId", Value: 1}})
	return s.FindWithPagination(ctx, BuildRangeFilter(staffID, from, to), page, limit, opts)
}
