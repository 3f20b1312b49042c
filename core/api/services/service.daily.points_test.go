package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTodayKeyFormat(t *testing.T) {
	key := TodayKey()

	parsed, err := time.Parse(DateKeyLayout, key)
	require.NoError(t, err)
	assert.Equal(t, key, parsed.Format(DateKeyLayout))
}

func TestBuildCreditUpdate(t *testing.T) {
	now := int64(1756400000000)
	update := BuildCreditUpdate("staff-1", "Tuan", 5, now)

	inc, ok := update["$inc"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, 5, inc["points"])
	assert.Equal(t, 1, inc["ordersCompleted"])

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Tuan", set["staffName"])
	assert.Equal(t, now, set["updatedAt"])

	setOnInsert, ok := update["$setOnInsert"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "staff-1", setOnInsert["staffId"])
	assert.Equal(t, now, setOnInsert["createdAt"])
}

func TestBuildCreditUpdateZeroPoints(t *testing.T) {
	// Cộng 0 điểm vẫn đếm ordersCompleted, upsert vẫn tạo row
	update := BuildCreditUpdate("staff-1", "Tuan", 0, 1)

	inc := update["$inc"].(bson.M)
	assert.Equal(t, 0, inc["points"])
	assert.Equal(t, 1, inc["ordersCompleted"])
}

func TestBuildRangeFilter(t *testing.T) {
	filter := BuildRangeFilter("staff-1", "2026-08-01", "2026-08-29")

	assert.Equal(t, "staff-1", filter["staffId"])
	dateRange, ok := filter["dateKey"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "2026-08-01", dateRange["$gte"])
	assert.Equal(t, "2026-08-29", dateRange["$lte"])
}

func TestBuildRangeFilterSkipsEmpty(t *testing.T) {
	assert.Empty(t, BuildRangeFilter("", "", ""))

	onlyFrom := BuildRangeFilter("", "2026-08-01", "")
	dateRange := onlyFrom["dateKey"].(bson.M)
	assert.Equal(t, "2026-08-01", dateRange["$gte"])
	_, hasLte := dateRange["$lte"]
	assert.False(t, hasLte)
	_, hasStaff := onlyFrom["staffId"]
	assert.False(t, hasStaff)
}
