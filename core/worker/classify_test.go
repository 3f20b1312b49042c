package worker

import (
	"testing"

	models "wallet_works/core/api/models/mongodb"
	"wallet_works/core/api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsertOne loại bỏ field chuỗi rỗng trước khi ghi, nên bản ghi chưa phân
// loại có thể không mang field itemType. Filter phải khớp cả ba dạng:
// field vắng mặt, field null và field "".
func TestBuildUnclassifiedFilterMatchesMissingField(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildUnclassifiedFilter(id)

	assert.Equal(t, id, filter["_id"])

	cond, ok := filter["itemType"].(bson.M)
	require.True(t, ok, "itemType phải là điều kiện $in, không phải so sánh bằng")

	in, ok := cond["$in"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, in, "")
	assert.Contains(t, in, nil)
}

func TestBuildClassificationUpdatePersistsAttributes(t *testing.T) {
	cls := services.Classification{
		ItemType:    models.ItemTypeWallet,
		WalletType:  "trifold",
		Points:      5,
		NeedsReview: false,
		Attributes: models.WalletAttributes{
			Leather:  "Black",
			Monogram: "TK",
		},
	}

	update := BuildClassificationUpdate(cls)

	assert.Equal(t, models.ItemTypeWallet, update.Set["itemType"])
	assert.Equal(t, "trifold", update.Set["walletType"])
	assert.Equal(t, 5, update.Set["points"])
	assert.Equal(t, false, update.Set["needsReview"])

	attrs, ok := update.Set["attributes"].(models.WalletAttributes)
	require.True(t, ok, "attributes trích xuất phải được ghi cùng kết quả phân loại")
	assert.Equal(t, "Black", attrs.Leather)
	assert.Equal(t, "TK", attrs.Monogram)
}
