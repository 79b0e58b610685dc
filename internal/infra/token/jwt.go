package token

import (
	"errors"
	"strconv"
	"time"

	"marketplace/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// HS256で署名・検証する
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// jwt発行
func (m *JWTManager) Issue(c model.Principal) (string, error) {
	now := m.now()

	claims := jwt.MapClaims{
		"sub":       c.UserID,
		"user_type": string(c.Role),
		"email":     c.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(m.ttl).Unix(),
	}
	if c.ShopID != nil {
		claims["shop_id"] = *c.ShopID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse は署名と期限を検証して本人情報を返す
func (m *JWTManager) Parse(raw string) (model.Principal, error) {
	parser := jwt.Parser{}
	token, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return model.Principal{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Principal{}, ErrInvalidToken
	}

	userID, err := parseID(mc["sub"])
	if err != nil || userID <= 0 {
		return model.Principal{}, ErrInvalidToken
	}

	role, _ := mc["user_type"].(string)
	if !model.Role(role).Valid() {
		return model.Principal{}, ErrInvalidToken
	}

	email, _ := mc["email"].(string)

	c := model.Principal{UserID: userID, Role: model.Role(role), Email: email}
	if v, ok := mc["shop_id"]; ok && v != nil {
		shopID, err := parseID(v)
		if err != nil {
			return model.Principal{}, ErrInvalidToken
		}
		c.ShopID = &shopID
	}
	return c, nil
}

// 数値 or 文字列のIDをint64に変換する
func parseID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid id")
	}
}
