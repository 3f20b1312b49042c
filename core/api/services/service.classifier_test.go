package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "wallet_works/core/api/models/mongodb"
)

func testCatalog() *Catalog {
	return NewCatalog(DefaultWalletTypeDefs())
}

func TestClassifyWalletByKeyword(t *testing.T) {
	cls := Classify("Handmade Leather Trifold Wallet", nil, testCatalog())

	assert.Equal(t, models.ItemTypeWallet, cls.ItemType)
	assert.Equal(t, "trifold", cls.WalletType)
	assert.Equal(t, 5, cls.Points)
	assert.False(t, cls.NeedsReview)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	cls := Classify("BIFOLD WALLET - Natural", nil, testCatalog())

	assert.Equal(t, models.ItemTypeWallet, cls.ItemType)
	assert.Equal(t, "bifold", cls.WalletType)
	assert.Equal(t, 4, cls.Points)
}

func TestClassifyLongestKeywordWins(t *testing.T) {
	// "Badge Trifold" chứa cả "trifold": loại có keyword dài hơn phải thắng
	cls := Classify("Badge Trifold Wallet", nil, testCatalog())

	assert.Equal(t, "badge-trifold", cls.WalletType)
	assert.Equal(t, 6, cls.Points)
}

func TestClassifyWalletLineWithoutWalletWord(t *testing.T) {
	// "Rio Grande" không chứa keyword ví nào nhưng là dòng ví trong catalog
	cls := Classify("Rio Grande - Buck Brown", nil, testCatalog())

	assert.Equal(t, models.ItemTypeWallet, cls.ItemType)
	assert.Equal(t, "rio-grande", cls.WalletType)
	assert.Equal(t, 5, cls.Points)
	assert.False(t, cls.NeedsReview)
}

func TestClassifyAccessory(t *testing.T) {
	cls := Classify("Leather Keychain", nil, testCatalog())

	assert.Equal(t, models.ItemTypeAccessory, cls.ItemType)
	assert.Empty(t, cls.WalletType)
	assert.Zero(t, cls.Points)
	assert.False(t, cls.NeedsReview)
}

func TestClassifyAccessoryIgnoresProperties(t *testing.T) {
	props := []models.PropertyKV{{Name: "Monogram", Value: "ABC"}}
	cls := Classify("Leather Belt", props, testCatalog())

	assert.Equal(t, models.ItemTypeAccessory, cls.ItemType)
	assert.Empty(t, cls.Attributes.Monogram)
	assert.Empty(t, cls.Attributes.Extra)
}

func TestClassifyUnknownWalletNeedsReview(t *testing.T) {
	// Tên có chữ "wallet" nhưng không khớp loại nào trong catalog
	cls := Classify("Mystery Wallet Prototype", nil, NewCatalog(nil))

	assert.Equal(t, models.ItemTypeWallet, cls.ItemType)
	assert.Empty(t, cls.WalletType)
	assert.Zero(t, cls.Points)
	assert.True(t, cls.NeedsReview)
}

func TestClassifyNilCatalog(t *testing.T) {
	cls := Classify("Trifold Wallet", nil, nil)

	assert.Equal(t, models.ItemTypeWallet, cls.ItemType)
	assert.True(t, cls.NeedsReview)
}

func TestClassifyDeterministic(t *testing.T) {
	catalog := testCatalog()
	first := Classify("Front Pocket Wallet - Black", nil, catalog)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("Front Pocket Wallet - Black", nil, catalog))
	}
}

func TestExtractAttributes(t *testing.T) {
	props := []models.PropertyKV{
		{Name: "Leather Color", Value: "Buck Brown"},
		{Name: "Monogram Initials", Value: "JTD"},
		{Name: "Engraving Text", Value: "Forever"},
		{Name: "Badge Cutout Style", Value: "Star"},
		{Name: "Badge Number", Value: "4512"},
		{Name: "Gift Wrap", Value: "Yes"},
	}

	cls := Classify("Trifold Wallet", props, testCatalog())

	assert.Equal(t, "Buck Brown", cls.Attributes.Leather)
	assert.Equal(t, "JTD", cls.Attributes.Monogram)
	assert.Equal(t, "Forever", cls.Attributes.Engraving)
	assert.Equal(t, "Star", cls.Attributes.BadgeCutout)
	assert.Equal(t, "4512", cls.Attributes.BadgeType)

	// Property không khớp rule nào giữ nguyên văn trong Extra
	require.Len(t, cls.Attributes.Extra, 1)
	assert.Equal(t, "Gift Wrap", cls.Attributes.Extra[0].Name)
	assert.Equal(t, "Yes", cls.Attributes.Extra[0].Value)
}

func TestExtractAttributesCutoutBeforeBadge(t *testing.T) {
	// Tên property chứa cả "badge" lẫn "cutout": rule cutout phải thắng
	props := []models.PropertyKV{{Name: "Badge Cutout", Value: "Shield"}}

	cls := Classify("Badge Trifold Wallet", props, testCatalog())

	assert.Equal(t, "Shield", cls.Attributes.BadgeCutout)
	assert.Empty(t, cls.Attributes.BadgeType)
}

func TestExtractAttributesSkipsEmpty(t *testing.T) {
	props := []models.PropertyKV{
		{Name: "", Value: "orphan"},
		{Name: "Monogram", Value: "   "},
		{Name: "Monogram", Value: " TK "},
	}

	cls := Classify("Bifold Wallet", props, testCatalog())

	assert.Equal(t, "TK", cls.Attributes.Monogram)
	assert.Empty(t, cls.Attributes.Extra)
}

func TestIsKnownAccessoryName(t *testing.T) {
	assert.True(t, IsKnownAccessoryName("Bottle Opener Keychain"))
	assert.True(t, IsKnownAccessoryName("BBQ Apron"))
	assert.False(t, IsKnownAccessoryName("Trifold Wallet"))
}
