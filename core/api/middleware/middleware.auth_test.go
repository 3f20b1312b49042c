package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_works/config"
	"wallet_works/core/common"
	"wallet_works/core/global"
)

func setTestSecret(t *testing.T, secret string) {
	t.Helper()
	prev := global.MongoDB_ServerConfig
	global.MongoDB_ServerConfig = &config.Configuration{JwtSecret: secret}
	t.Cleanup(func() { global.MongoDB_ServerConfig = prev })
}

func TestStaffTokenRoundTrip(t *testing.T) {
	setTestSecret(t, "test-secret")

	token, err := IssueStaffToken("staff-1", "Tuan", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseStaffToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.Subject)
	assert.Equal(t, "Tuan", claims.StaffName)
}

func TestParseStaffTokenWrongSecret(t *testing.T) {
	setTestSecret(t, "test-secret")

	token, err := IssueStaffToken("staff-1", "Tuan", time.Hour)
	require.NoError(t, err)

	_, err = ParseStaffToken(token, "other-secret")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseStaffTokenExpired(t *testing.T) {
	setTestSecret(t, "test-secret")

	token, err := IssueStaffToken("staff-1", "Tuan", -time.Minute)
	require.NoError(t, err)

	_, err = ParseStaffToken(token, "test-secret")
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestParseStaffTokenGarbage(t *testing.T) {
	_, err := ParseStaffToken("not.a.token", "test-secret")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseStaffTokenMissingSubject(t *testing.T) {
	setTestSecret(t, "test-secret")

	token, err := IssueStaffToken("", "NoID", time.Hour)
	require.NoError(t, err)

	_, err = ParseStaffToken(token, "test-secret")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
