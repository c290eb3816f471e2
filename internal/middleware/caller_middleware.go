package middleware

import (
	"context"

	"go-worksuite/internal/access"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallerResolver is a local interface so this package does not depend on the
// profile module. The profile service satisfies it.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, userID string) (access.Caller, error)
}

// ResolveCaller loads the caller's profile on every protected request and
// threads the resulting access.Caller through both the gin and request
// contexts. A missing profile or unrecognized role denies all access and
// forces re-authentication.
func ResolveCaller(resolver CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			redirectToLogin(c)
			return
		}

		caller, err := resolver.ResolveCaller(c.Request.Context(), userID)
		if err != nil || !caller.Role.Valid() {
			zap.L().Warn("caller resolution failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			redirectToLogin(c)
			return
		}

		c.Set(access.GinKey, caller)
		c.Request = c.Request.WithContext(access.WithCaller(c.Request.Context(), caller))
		c.Next()
	}
}

// CallerFromGin returns the caller stored by ResolveCaller.
func CallerFromGin(c *gin.Context) (access.Caller, bool) {
	v, ok := c.Get(access.GinKey)
	if !ok {
		return access.Caller{}, false
	}
	caller, ok := v.(access.Caller)
	return caller, ok
}

// RequireRole gates a route group to the listed roles. Denied callers are
// sent to the generic dashboard rather than shown an error page.
func RequireRole(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromGin(c)
		if !ok {
			redirectToLogin(c)
			return
		}
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		redirectToDashboard(c)
	}
}

// Authorize enforces the role/resource/action policy. Row-level visibility
// stays with the access scopes in the repos.
func Authorize(policy access.Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFromGin(c)
		if !ok {
			redirectToLogin(c)
			return
		}

		allowed, err := policy.Allowed(caller.Role, resource, action)
		if err != nil {
			zap.L().Error("policy check failed",
				zap.String("role", caller.Role.String()),
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			redirectToDashboard(c)
			return
		}
		if !allowed {
			redirectToDashboard(c)
			return
		}
		c.Next()
	}
}
