package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "wallet_works/core/api/models/mongodb"
)

func TestNewCatalogNormalizesKeywords(t *testing.T) {
	catalog := NewCatalog([]models.WalletTypeDef{
		{TypeID: "demo", Label: "Demo", Keywords: []string{"  Demo Wallet ", "", "demo"}, Points: 3, IsWalletLine: true},
	})

	entries := catalog.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"demo wallet", "demo"}, entries[0].Keywords)
}

func TestNewCatalogSkipsEntryWithoutKeywords(t *testing.T) {
	catalog := NewCatalog([]models.WalletTypeDef{
		{TypeID: "empty", Label: "Empty", Keywords: []string{"  ", ""}},
		{TypeID: "ok", Label: "OK", Keywords: []string{"ok"}},
	})

	require.Len(t, catalog.Entries(), 1)
	assert.Equal(t, "ok", catalog.Entries()[0].TypeID)
}

func TestNewCatalogOrdersLongestFirst(t *testing.T) {
	catalog := NewCatalog([]models.WalletTypeDef{
		{TypeID: "short", Label: "Short", Keywords: []string{"fold"}},
		{TypeID: "long", Label: "Long", Keywords: []string{"badge fold"}},
	})

	entries := catalog.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "long", entries[0].TypeID)
	assert.Equal(t, "short", entries[1].TypeID)
}

func TestCatalogResolve(t *testing.T) {
	catalog := NewCatalog(DefaultWalletTypeDefs())

	entry := catalog.Resolve("premium checkbook cover wallet")
	require.NotNil(t, entry)
	assert.Equal(t, "checkbook-cover", entry.TypeID)

	assert.Nil(t, catalog.Resolve("leather keychain"))
}

func TestCatalogEntryFor(t *testing.T) {
	catalog := NewCatalog(DefaultWalletTypeDefs())

	entry, ok := catalog.EntryFor("money-clip")
	require.True(t, ok)
	assert.Equal(t, "Money Clip", entry.Label)
	assert.Equal(t, 4, entry.Points)

	_, ok = catalog.EntryFor("unknown-type")
	assert.False(t, ok)
}

func TestCatalogPointsAndLabel(t *testing.T) {
	catalog := NewCatalog(DefaultWalletTypeDefs())

	assert.Equal(t, 6, catalog.PointsFor("badge-trifold"))
	assert.Equal(t, 0, catalog.PointsFor("missing"))
	assert.Equal(t, "Rio Grande", catalog.LabelFor("rio-grande"))
	assert.Equal(t, "", catalog.LabelFor("missing"))
}

func TestDefaultWalletTypeDefsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range DefaultWalletTypeDefs() {
		assert.False(t, seen[def.TypeID], "duplicate typeId %s", def.TypeID)
		seen[def.TypeID] = true
		assert.NotEmpty(t, def.Keywords)
		assert.True(t, def.IsWalletLine)
		assert.Greater(t, def.Points, 0)
	}
}
