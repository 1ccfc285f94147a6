package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims StudentClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newGuardedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/students/:student_id/dashboard", StudentGuard(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestStudentGuard(t *testing.T) {
	validToken := signToken(t, testSecret, StudentClaims{
		StudentID: "stu-001",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	subjectOnlyToken := signToken(t, testSecret, StudentClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "stu-001",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	expiredToken := signToken(t, testSecret, StudentClaims{
		StudentID: "stu-001",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	wrongKeyToken := signToken(t, "other-secret", StudentClaims{
		StudentID: "stu-001",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	tests := []struct {
		name           string
		authorization  string
		path           string
		expectedStatus int
	}{
		{
			name:           "valid token matching path",
			authorization:  "Bearer " + validToken,
			path:           "/students/stu-001/dashboard",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "subject claim used when student_id claim absent",
			authorization:  "Bearer " + subjectOnlyToken,
			path:           "/students/stu-001/dashboard",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "token for another student",
			authorization:  "Bearer " + validToken,
			path:           "/students/stu-002/dashboard",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing authorization header",
			authorization:  "",
			path:           "/students/stu-001/dashboard",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed header",
			authorization:  "Token abc",
			path:           "/students/stu-001/dashboard",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "expired token",
			authorization:  "Bearer " + expiredToken,
			path:           "/students/stu-001/dashboard",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "token signed with wrong key",
			authorization:  "Bearer " + wrongKeyToken,
			path:           "/students/stu-001/dashboard",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	r := newGuardedRouter(testSecret)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestStudentGuardDisabled(t *testing.T) {
	r := newGuardedRouter("")

	req := httptest.NewRequest(http.MethodGet, "/students/stu-001/dashboard", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d with auth disabled, got %d", http.StatusOK, w.Code)
	}
}
