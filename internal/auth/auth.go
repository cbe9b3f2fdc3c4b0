package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/workhub/leave-management/internal"
)

// Login is a credential record joined with the employee it belongs to.
// ActiveToken enforces the single-session rule: at most one valid token per
// login at any time.
type Login struct {
	ID           int64
	EmployeeID   int64
	EmpName      string
	IsManager    bool
	PasswordHash string
	ActiveToken  *string
}

// Session is what authenticated handlers see in the request context.
type Session struct {
	LoginID    int64
	EmployeeID int64
	EmpName    string
	IsManager  bool
	Token      string
}

// Claims represents JWT token claims.
type Claims struct {
	LoginID    int64 `json:"id"`
	EmployeeID int64 `json:"employee_id"`
	IsManager  bool  `json:"isManager"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates access tokens.
type TokenGenerator interface {
	GenerateAccessToken(loginID, employeeID int64, isManager bool) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:   []byte(secret),
		TokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(loginID, employeeID int64, isManager bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.TokenTTL)

	claims := &Claims{
		LoginID:    loginID,
		EmployeeID: employeeID,
		IsManager:  isManager,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal.ErrInvalidToken
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}
	return claims, nil
}

// SessionFromContext pulls the authenticated session out of the request
// context.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(internal.ContextSessionKey).(*Session)
	return session, ok
}

// ContextWithSession is used by the auth middleware and by handler tests.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, internal.ContextSessionKey, session)
}
