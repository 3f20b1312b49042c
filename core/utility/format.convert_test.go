package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	assert.Equal(t, 29.50, ParseMoney("29.50"))
	assert.Equal(t, 29.50, ParseMoney("  29.50  "))
	assert.Equal(t, 0.0, ParseMoney(""))
	assert.Equal(t, 0.0, ParseMoney("abc"))
	assert.Equal(t, 0.0, ParseMoney("29,50"))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"rush", "wholesale"}, SplitTags("rush, wholesale ,,"))
	assert.Equal(t, []string{"one"}, SplitTags("one"))
	assert.Empty(t, SplitTags(""))
	assert.Empty(t, SplitTags(" , , "))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", FirstNonEmpty("a", "b"))
	assert.Equal(t, "b", FirstNonEmpty("", "b"))
	assert.Equal(t, "b", FirstNonEmpty("   ", "b"))
	assert.Equal(t, "trimmed", FirstNonEmpty("  trimmed  "))
	assert.Equal(t, "", FirstNonEmpty("", "  "))
}

func TestJoinDistinct(t *testing.T) {
	assert.Equal(t, "Trifold, Bifold", JoinDistinct([]string{"Trifold", "Bifold", "Trifold"}))
	assert.Equal(t, "Trifold", JoinDistinct([]string{"Trifold", "", "Trifold"}))
	assert.Equal(t, "", JoinDistinct(nil))
}

func TestParseSourceTime(t *testing.T) {
	expected := time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, expected, ParseSourceTime("2026-08-29T10:15:00Z"))

	assert.Zero(t, ParseSourceTime(""))
	assert.Zero(t, ParseSourceTime("not-a-time"))
	assert.Zero(t, ParseSourceTime("2026-08-29"))
}

func TestParseSourceTimeWithOffset(t *testing.T) {
	utc := ParseSourceTime("2026-08-29T10:15:00Z")
	offset := ParseSourceTime("2026-08-29T17:15:00+07:00")
	assert.Equal(t, utc, offset)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains([]string{}, "a"))
	assert.True(t, Contains([]int{1, 2, 3}, 2))
}
