/* 세션 JWT 토큰 생성 및 검증 (학생 / 교사) */

package auth

import (
	"errors"
	"sync"
	"time"

	"ClassroomAnswerLog/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"

	issuer = "ClassroomAnswerLog-api"
)

var ErrInvalidRole = errors.New("invalid role")

var (
	mu       sync.RWMutex
	jwtKey   []byte
	tokenTTL = 8 * time.Hour
)

// Init sets the signing key and token lifetime. An empty secret is replaced
// by a random per-process key, so tokens do not survive a restart.
func Init(secret string, ttl time.Duration) {
	mu.Lock()
	defer mu.Unlock()

	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		logger.Log.Warn("auth.Init(): auth.jwt_secret is not set. Using a random per-process key.")
	}
	jwtKey = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func key() []byte {
	mu.RLock()
	defer mu.RUnlock()
	return jwtKey
}

// Claims 구조체, 이름과 역할을 페이로드에 포함
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func GenerateToken(name, role string) (string, error) {
	if role != RoleStudent && role != RoleTeacher {
		return "", ErrInvalidRole
	}
	k := key()
	if len(k) == 0 {
		return "", errors.New("auth: signing key not initialised")
	}

	mu.RLock()
	ttl := tokenTTL
	mu.RUnlock()

	now := time.Now()
	claims := &Claims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   role + "_session",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(k)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Role != RoleStudent && claims.Role != RoleTeacher {
		return nil, ErrInvalidRole
	}
	return claims, nil
}
