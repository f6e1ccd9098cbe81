// File: internal/service/authentication.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-app/internal/cache"
	"todo-app/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// 測試用替換點
var (
	randRead        = rand.Read
	jsonMarshal     = json.Marshal
	jsonUnmarshal   = json.Unmarshal
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// CustomClaims 定義 JWT 負載內容，sub 為使用者名稱
type CustomClaims struct {
	UserID int    `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin 判斷角色是否為管理員（不分大小寫）
func (c *CustomClaims) IsAdmin() bool {
	return strings.EqualFold(c.Role, "admin")
}

// RefreshTokenData 為存於 Redis 的 refresh token 內容
type RefreshTokenData struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const refreshTokenKeyPrefix = "refresh_token:"

// Auth 簽發與驗證令牌，secret 與 TTL 於啟動時注入，之後不可變
type Auth struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewAuth 建立 Auth 服務
func NewAuth(secret string, accessTTL, refreshTTL time.Duration) *Auth {
	return &Auth{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

// AuthenticateUser 比對明文密碼與使用者的 bcrypt 哈希
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if err := ComparePassword(user.HashedPassword, password); err != nil {
		return errors.New("invalid password")
	}
	return nil
}

// IssueAccessToken 依據使用者資訊與 TTL 產生 JWT
func (a *Auth) IssueAccessToken(user model.User, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := CustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyAccessToken 驗證並解析 JWT 令牌
// 簽章錯誤、過期或缺少 sub/id 皆視為驗證失敗
func (a *Auth) VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" || claims.UserID == 0 {
		return nil, fmt.Errorf("missing required claims")
	}

	return claims, nil
}

// IssueRefreshToken 產生隨機 refresh token 並寫入快取
func (a *Auth) IssueRefreshToken(ctx context.Context, c cache.Cache, user model.User, ttl time.Duration) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	data, err := jsonMarshal(RefreshTokenData{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", err
	}

	if err := c.Set(ctx, refreshTokenKeyPrefix+token, data, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateRefreshToken 讀取並解析快取中的 refresh token
func (a *Auth) ValidateRefreshToken(ctx context.Context, c cache.Cache, token string) (*RefreshTokenData, error) {
	raw, err := c.Get(ctx, refreshTokenKeyPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token")
	}
	var data RefreshTokenData
	if err := jsonUnmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}
