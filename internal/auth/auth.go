package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type StudentClaims struct {
	StudentID string `json:"student_id"`
	jwt.RegisteredClaims
}

// ResolveStudentID returns the student the token was issued for, preferring
// the custom claim over the registered subject.
func (c *StudentClaims) ResolveStudentID() string {
	if c.StudentID != "" {
		return c.StudentID
	}
	return c.Subject
}

// StudentGuard verifies the bearer token and rejects requests whose token
// was issued for a different student than the one in the path.
func StudentGuard(secret string) gin.HandlerFunc {
	if secret == "" {
		slog.Warn("AUTH_JWT_SECRET not set, student authentication disabled")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims := &StudentClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims,
			func(_ *jwt.Token) (any, error) { return key, nil },
			jwt.WithValidMethods([]string{"HS256"}),
		)
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}

		if p := c.Param("student_id"); p != "" && p != claims.ResolveStudentID() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "token does not grant access to this student",
			})
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":   "unauthorized",
		"message": message,
	})
}
