package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"iResearch/server/internal/apperr"
)

// TokenTTL 令牌有效期：签发后 24 小时过期
// 无状态设计，没有吊销列表；改了角色/密码也要等旧令牌自然过期
const TokenTTL = 24 * time.Hour

// Claims JWT 负载：用户 id、用户名、角色
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken 签发令牌 (HS256)
func GenerateToken(secret string, userID uint, username, role string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken 校验并解析令牌
// 过期、签名错误、结构不对都归为"未认证"，调用方统一返回 401
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "无效或过期的令牌", err)
	}
	return claims, nil
}
