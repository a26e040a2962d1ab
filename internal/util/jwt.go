package util

import (
	"time"

	"tutor_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated identity. StudentID is non-zero only for
// tokens issued through the join-code student login; the credential itself
// is always the owning parent's.
type Claims struct {
	UserID    uint           `json:"user_id"`
	Role      model.UserRole `json:"role"`
	Email     string         `json:"email"`
	StudentID uint           `json:"student_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateJWT(user *model.User, studentID uint, secret string, expiration time.Duration) (string, error) {
	claims := &Claims{
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
		StudentID: studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// GetUserFromContext returns the verified caller identity set by the auth
// middleware, or nil when the request carried no valid token. Callers must
// treat nil as unauthorized; there is no fallback identity.
func GetUserFromContext(c *gin.Context) *Claims {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	claims, ok := user.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
