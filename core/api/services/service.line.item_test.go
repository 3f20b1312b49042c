package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "wallet_works/core/api/models/mongodb"
)

func TestBuildClaimFilter(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildClaimFilter(id)

	assert.Equal(t, id, filter["_id"])
	assert.Equal(t, models.StatusPending, filter["status"])
}

func TestBuildClaimUpdate(t *testing.T) {
	update := BuildClaimUpdate("staff-1", "Tuan", 1756400000000)

	require.NotNil(t, update.Set)
	assert.Equal(t, models.StatusClaimed, update.Set["status"])
	assert.Equal(t, "staff-1", update.Set["claimedBy"])
	assert.Equal(t, "Tuan", update.Set["claimedByName"])
	assert.Equal(t, int64(1756400000000), update.Set["claimedAt"])
	assert.Nil(t, update.Inc)
	assert.Nil(t, update.Unset)
}

func TestBuildStartFilterOnlyFromClaimed(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildStartFilter(id)

	assert.Equal(t, models.StatusClaimed, filter["status"])
}

func TestBuildCompleteFilterFromClaimedOrInProgress(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildCompleteFilter(id)

	statuses, ok := filter["status"].(bson.M)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{models.StatusClaimed, models.StatusInProgress}, statuses["$in"])
}

func TestBuildVoidFilterOnlyFromPending(t *testing.T) {
	id := primitive.NewObjectID()
	filter := BuildVoidFilter(id)

	assert.Equal(t, models.StatusPending, filter["status"])
}
