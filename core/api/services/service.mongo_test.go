package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/common"
	"wallet_works/core/global"
)

// Các test trong file này chạy trên MongoDB thật: set TEST_MONGODB_URI
// (ví dụ mongodb://localhost:27017) để chạy, không set thì skip.
// Mỗi test dùng một database riêng và drop khi xong.

func setupMongoServices(t *testing.T) *Catalog {
	t.Helper()

	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI chưa được set, bỏ qua test cần MongoDB thật")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	dbName := fmt.Sprintf("wallet_works_test_%d", time.Now().UnixNano())
	db := client.Database(dbName)

	names := []string{
		global.MongoDB_ColNames.Orders,
		global.MongoDB_ColNames.LineItems,
		global.MongoDB_ColNames.DailyPoints,
		global.MongoDB_ColNames.WalletTypes,
		global.MongoDB_ColNames.WebhookLogs,
	}
	for _, name := range names {
		_, err := global.RegistryCollections.Register(name, db.Collection(name))
		require.NoError(t, err)
	}

	// Các unique index giống production: khóa idempotency của orders và
	// chống double-insert row điểm ngày
	_, err = db.Collection(global.MongoDB_ColNames.Orders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "sourceOrderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)
	_, err = db.Collection(global.MongoDB_ColNames.DailyPoints).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "staffId", Value: 1}, {Key: "dateKey", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return NewCatalog(DefaultWalletTypeDefs())
}

// Cùng một webhook orders/create đến hai lần phải cho đúng một đơn và
// đúng một bộ line item.
func TestIngestOrderCreatedTwiceKeepsOneOrder(t *testing.T) {
	catalog := setupMongoServices(t)
	svc, err := NewOrderService(catalog)
	require.NoError(t, err)
	ctx := context.Background()

	payload := samplePayload()
	_, err = svc.IngestOrderCreated(ctx, payload)
	require.NoError(t, err)
	_, err = svc.IngestOrderCreated(ctx, payload)
	require.NoError(t, err, "lần gửi lại phải đi đường update, không lỗi")

	orderCount, err := svc.CountDocuments(ctx, bson.M{"sourceOrderId": payload.IDString()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), orderCount)

	items, err := svc.lineItemService.Find(ctx, bson.M{"sourceOrderId": payload.IDString()}, nil)
	require.NoError(t, err)
	assert.Len(t, items, len(payload.LineItems), "line items không được nhân đôi")
}

// Lần create chết giữa chừng để lại đơn không có line item nào; webhook
// redelivery đi đường update phải backfill được bộ line item.
func TestIngestOrderUpdatedBackfillsMissingLineItems(t *testing.T) {
	catalog := setupMongoServices(t)
	svc, err := NewOrderService(catalog)
	require.NoError(t, err)
	ctx := context.Background()

	payload := samplePayload()

	// Mô phỏng ingest dở dang: chỉ đơn được ghi
	order, _ := BuildOrderRecords(payload, catalog)
	_, err = svc.InsertOne(ctx, order)
	require.NoError(t, err)

	_, err = svc.IngestOrderUpdated(ctx, payload)
	require.NoError(t, err)

	items, err := svc.lineItemService.Find(ctx, bson.M{"sourceOrderId": payload.IDString()}, nil)
	require.NoError(t, err)
	require.Len(t, items, len(payload.LineItems))
	for _, item := range items {
		assert.Equal(t, models.StatusPending, item.Status)
		assert.False(t, item.OrderID.IsZero(), "line item backfill phải trỏ về đơn đã có")
	}
}

// Nhiều staff cùng bấm claim một line item: đúng một người thắng, những
// người còn lại nhận ErrAlreadyClaimed.
func TestConcurrentClaimHasSingleWinner(t *testing.T) {
	catalog := setupMongoServices(t)
	svc, err := NewOrderService(catalog)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.IngestOrderCreated(ctx, samplePayload())
	require.NoError(t, err)

	items, err := svc.lineItemService.Find(ctx, bson.M{"status": models.StatusPending, "itemType": models.ItemTypeWallet}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	target := items[0]

	const racers = 8
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.lineItemService.Claim(ctx, target.ID, fmt.Sprintf("staff-%d", n), fmt.Sprintf("Staff %d", n))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	winners := 0
	losers := 0
	for err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, common.ErrAlreadyClaimed)
		losers++
	}
	assert.Equal(t, 1, winners, "đúng một claim thắng")
	assert.Equal(t, racers-1, losers)

	stored, err := svc.lineItemService.FindOne(ctx, bson.M{"_id": target.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, stored.Status)
	assert.NotEmpty(t, stored.ClaimedBy)
}

// Complete hai lần chỉ được cộng điểm một lần; lần hai là chuyển trạng
// thái không hợp lệ.
func TestCompleteTwiceCreditsOnce(t *testing.T) {
	catalog := setupMongoServices(t)
	svc, err := NewOrderService(catalog)
	require.NoError(t, err)
	pointsSvc, err := NewDailyPointsService()
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.IngestOrderCreated(ctx, samplePayload())
	require.NoError(t, err)

	items, err := svc.lineItemService.Find(ctx, bson.M{"itemType": models.ItemTypeWallet, "walletType": "trifold"}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	target := items[0]
	require.Greater(t, target.Points, 0)

	const staffID = "staff-complete"
	_, err = svc.lineItemService.Claim(ctx, target.ID, staffID, "Staff Complete")
	require.NoError(t, err)

	completed, err := svc.lineItemService.Complete(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)

	_, err = svc.lineItemService.Complete(ctx, target.ID)
	assert.ErrorIs(t, err, common.ErrInvalidTransition, "complete lần hai phải bị từ chối")

	row, err := pointsSvc.GetToday(ctx, staffID)
	require.NoError(t, err)
	assert.Equal(t, target.Points, row.Points, "điểm chỉ được cộng một lần")
	assert.Equal(t, 1, row.OrdersCompleted)
}

// Đơn bị hủy chỉ void các line item còn pending; item đã có người nhận
// giữ nguyên trạng thái.
func TestCancelledOrderVoidsOnlyPendingItems(t *testing.T) {
	catalog := setupMongoServices(t)
	svc, err := NewOrderService(catalog)
	require.NoError(t, err)
	ctx := context.Background()

	payload := samplePayload()
	_, err = svc.IngestOrderCreated(ctx, payload)
	require.NoError(t, err)

	items, err := svc.lineItemService.Find(ctx, bson.M{"sourceOrderId": payload.IDString(), "status": models.StatusPending}, nil)
	require.NoError(t, err)
	require.Len(t, items, 3)

	claimed, err := svc.lineItemService.Claim(ctx, items[0].ID, "staff-keep", "Staff Keep")
	require.NoError(t, err)

	cancelled := payload
	cancelled.CancelledAt = "2026-08-29T12:00:00Z"
	_, err = svc.IngestOrderUpdated(ctx, cancelled)
	require.NoError(t, err)

	stored, err := svc.lineItemService.FindOne(ctx, bson.M{"_id": claimed.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClaimed, stored.Status, "item đã nhận việc không bị void tự động")

	voidedCount, err := svc.lineItemService.CountDocuments(ctx, bson.M{
		"sourceOrderId": payload.IDString(),
		"status":        models.StatusVoid,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), voidedCount, "chỉ các item pending bị void")
}

// Nhiều completion đầu ngày của cùng một staff cộng dồn vào đúng một
// row, không mất điểm và không lỗi duplicate lộ ra ngoài.
func TestConcurrentFirstOfDayCredits(t *testing.T) {
	setupMongoServices(t)
	pointsSvc, err := NewDailyPointsService()
	require.NoError(t, err)
	ctx := context.Background()

	const staffID = "staff-race"
	const credits = 6
	const perCredit = 5

	errs := make(chan error, credits)
	var wg sync.WaitGroup
	for i := 0; i < credits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- pointsSvc.CreditCompletion(ctx, staffID, "Staff Race", perCredit)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err, "credit thua race upsert phải được retry, không lộ lỗi")
	}

	rowCount, err := pointsSvc.CountDocuments(ctx, bson.M{"staffId": staffID, "dateKey": TodayKey()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rowCount, "mỗi (staff, ngày) đúng một row")

	row, err := pointsSvc.GetToday(ctx, staffID)
	require.NoError(t, err)
	assert.Equal(t, credits*perCredit, row.Points)
	assert.Equal(t, credits, row.OrdersCompleted)
}
