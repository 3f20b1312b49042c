// Package middleware chứa các middleware của tầng HTTP.
package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v4"

	"wallet_works/core/common"
	"wallet_works/core/global"
	"wallet_works/core/logger"
)

// StaffClaims là claims trong JWT của staff.
// Token do hệ thống quản trị của xưởng phát hành, ký HS256 bằng
// JWT_SECRET dùng chung.
type StaffClaims struct {
	StaffName string `json:"staffName,omitempty"`
	jwt.RegisteredClaims
}

// IssueStaffToken phát hành token cho một staff. Dùng bởi tooling nội bộ
// và test; production token đến từ hệ thống quản trị.
func IssueStaffToken(staffID, staffName string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := StaffClaims{
		StaffName: staffName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staffID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.MongoDB_ServerConfig.JwtSecret))
}

// ParseStaffToken parse và verify một token staff, trả về claims
func ParseStaffToken(tokenStr, secret string) (*StaffClaims, error) {
	claims := &StaffClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}

// AuthMiddleware xác thực JWT Bearer token của staff.
// Claims hợp lệ được set vào Locals: staffId, staffName.
// Các route webhook và health KHÔNG đi qua middleware này.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return unauthorized(c, common.ErrTokenMissing)
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims, err := ParseStaffToken(tokenStr, global.MongoDB_ServerConfig.JwtSecret)
		if err != nil {
			logger.GetAppLogger().WithError(err).Warn("🔐 [AUTH] Token không hợp lệ")
			return unauthorized(c, err)
		}

		c.Locals("staffId", claims.Subject)
		c.Locals("staffName", claims.StaffName)

		return c.Next()
	}
}

// unauthorized trả về response 401 theo format chuẩn của hệ thống
func unauthorized(c fiber.Ctx, err error) error {
	var customErr *common.Error
	code := common.ErrCodeAuthToken.Code
	message := "Chưa xác thực"
	if errors.As(err, &customErr) {
		code = customErr.Code.Code
		message = customErr.Message
	}
	return c.Status(common.StatusUnauthorized).JSON(fiber.Map{
		"code":    code,
		"message": message,
		"status":  "error",
	})
}
