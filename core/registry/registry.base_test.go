package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("orders", "col-orders")
	require.NoError(t, err)
	assert.True(t, isNew)

	value, exists := r.Get("orders")
	assert.True(t, exists)
	assert.Equal(t, "col-orders", value)

	_, exists = r.Get("missing")
	assert.False(t, exists)
}

func TestRegistryRegisterOverwrite(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("key", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("key", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	value, _ := r.Get("key")
	assert.Equal(t, 2, value)
}

func TestRegistryRegisterEmptyName(t *testing.T) {
	r := NewRegistry[string]()

	_, err := r.Register("", "value")
	assert.Error(t, err)
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry[string]()
	calls := 0
	creator := func() (string, error) {
		calls++
		return "created", nil
	}

	value, err := r.GetOrCreate("lazy", creator)
	require.NoError(t, err)
	assert.Equal(t, "created", value)

	// Lần hai trả về item đã có, không gọi lại creator
	value, err = r.GetOrCreate("lazy", creator)
	require.NoError(t, err)
	assert.Equal(t, "created", value)
	assert.Equal(t, 1, calls)
}

func TestRegistryGetOrCreateError(t *testing.T) {
	r := NewRegistry[string]()

	_, err := r.GetOrCreate("bad", func() (string, error) {
		return "", errors.New("creator failed")
	})
	assert.Error(t, err)

	_, exists := r.Get("bad")
	assert.False(t, exists)
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("temp", "value")
	require.NoError(t, err)

	cleaned := false
	deleted, err := r.Clear("temp", func(item string) error {
		cleaned = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, cleaned)

	deleted, err = r.Clear("temp", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)

	assert.ElementsMatch(t, []string{"a", "b"}, r.Names())
}
