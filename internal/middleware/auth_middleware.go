package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "go-worksuite/internal/auth/errors"
	"go-worksuite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// LoginRoute and DashboardRoute are the fallback targets on auth failures.
// Missing/invalid session goes back to login; a valid session with an
// insufficient role goes to the generic dashboard, never a bare 403 page.
const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
)

// AuthMiddleware validates the JWT and records the authenticated user id.
// It proves identity only; role and company linkage are resolved from the
// profile row by ResolveCaller on every request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			redirectToLogin(c)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, LoginRoute)
	c.Abort()
}

func redirectToDashboard(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, DashboardRoute)
	c.Abort()
}
