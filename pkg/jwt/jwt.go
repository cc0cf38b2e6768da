package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/xiebiao/catalogue/pkg/errors"
)

// 角色定义（与身份服务签发的rol声明一致）
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Manager JWT管理器
// 设计说明：
// 1. Token由外部身份服务签发，本服务只负责校验签名与有效期
// 2. 使用HS256共享密钥
// 3. GenerateToken用于本地调试与测试
type Manager struct {
	secret      string
	tokenExpire time.Duration
	issuer      string
}

// NewManager 创建JWT管理器
func NewManager(secret string, tokenExpire time.Duration) *Manager {
	return &Manager{
		secret:      secret,
		tokenExpire: tokenExpire,
		issuer:      "catalogue",
	}
}

// Claims 自定义JWT Claims
// Role对应身份服务写入的rol字段
type Claims struct {
	Role string `json:"rol,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken 签发Token
// 参数：
// - subject: 用户标识
// - role: 角色（User/Admin），为空时不写入rol声明
// 每个Token带唯一jti，同一秒签发的Token也可以分别吊销
func (m *Manager) GenerateToken(subject, role string) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenExpire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   subject,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// ParseToken 解析并验证Token
// 1. 验证签名算法与签名
// 2. 验证过期时间（exp）与生效时间（nbf）
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil {
		// v5把具体原因包装在err链中，必须用errors.Is判断
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}
