package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUpdateDataPassthrough(t *testing.T) {
	original := &UpdateData{Set: map[string]interface{}{"a": 1}}

	update, err := ToUpdateData(original)
	require.NoError(t, err)
	assert.Same(t, original, update)
}

func TestToUpdateDataFromValue(t *testing.T) {
	update, err := ToUpdateData(UpdateData{Set: map[string]interface{}{"a": 1}})
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, 1, update.Set["a"])
}

func TestToUpdateDataWrapsPlainMap(t *testing.T) {
	update, err := ToUpdateData(map[string]interface{}{
		"status":    "claimed",
		"claimedBy": "staff-1",
	})
	require.NoError(t, err)
	require.NotNil(t, update.Set)
	assert.Equal(t, "claimed", update.Set["status"])
	assert.Equal(t, "staff-1", update.Set["claimedBy"])
	assert.Nil(t, update.Inc)
}
