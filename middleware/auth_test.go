package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	handlers := []gin.HandlerFunc{AuthRequired()}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c), "role": GetRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{ID: 7, Email: "a@b.co", Role: models.RoleOwner}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, models.RoleOwner, claims.Role)
}

func TestParseToken_RejectsForeignSecretAndExpired(t *testing.T) {
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1})
	signed, err := foreign.SignedString([]byte("someone-else"))
	require.NoError(t, err)
	_, err = ParseToken(signed)
	require.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err = expired.SignedString(config.JWTSecret)
	require.NoError(t, err)
	_, err = ParseToken(signed)
	require.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	r := newProtectedRouter()

	require.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	require.Equal(t, http.StatusUnauthorized, doGet(r, "not-a-jwt").Code)

	token, err := GenerateToken(&models.User{ID: 3, Role: models.RoleCustomer})
	require.NoError(t, err)
	w := doGet(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"userId":3,"role":"customer"}`, w.Body.String())
	require.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRoleRequired(t *testing.T) {
	r := newProtectedRouter(models.RoleAdmin)

	customer, _ := GenerateToken(&models.User{ID: 3, Role: models.RoleCustomer})
	require.Equal(t, http.StatusForbidden, doGet(r, customer).Code)

	admin, _ := GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.Equal(t, http.StatusOK, doGet(r, admin).Code)
}

func TestRequestID_EchoesCallerValue(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
