package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MuhammadAwais989/school-managment-system-sub000/config"
)

var (
	ErrTokenExpired = errors.New("token 已过期")
	ErrTokenInvalid = errors.New("token 无效")
)

// 控制台角色常量（与后台记录服务的账号体系一致）
const (
	RoleAdmin     = "Admin"
	RolePrincipal = "Principal"
	RoleTeacher   = "Teacher"
)

// Claims 自定义 JWT 声明
// Token 由外部认证服务签发；本服务读取角色与班主任任课班级用于数据范围过滤
type Claims struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	Role          string `json:"role"` // Admin | Principal | Teacher
	ClassAssigned string `json:"class_assigned,omitempty"`
	ClassSection  string `json:"class_section,omitempty"`
	jwtv5.RegisteredClaims
}

// Manager JWT 管理器
type Manager struct {
	secret []byte
}

// NewManager 创建 JWT 管理器
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{secret: []byte(cfg.JWTSecret)}
}

// GenerateToken 以共享密钥签发 Token
// 线上由外部认证服务签发；此方法供本地联调与测试使用
func (m *Manager) GenerateToken(userID, userName, role, classAssigned, classSection string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:        userID,
		UserName:      userName,
		Role:          role,
		ClassAssigned: classAssigned,
		ClassSection:  classSection,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "school-managment-system",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并验证 Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
