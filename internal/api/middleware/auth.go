package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/cache"
	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

const userIDKey = "userID"

// syncInterval bounds how often a caller's profile is upserted from the token.
const syncInterval = 10 * time.Minute

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware validates identity provider tokens, mirrors the caller into
// the users table and sets the user ID in the context.
func AuthMiddleware(authService service.AuthService, userService service.UserService, log *zap.Logger) gin.HandlerFunc {
	synced := cache.New[string, struct{}](syncInterval, nil)

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.GetHeader("Authorization") == "" {
			log.Debug("missing authorization header", zap.String("path", path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			log.Debug("invalid authorization header format", zap.String("path", path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		identity, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Debug("invalid token", zap.String("path", path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if _, fresh := synced.Get(identity.UserID); !fresh {
			if _, err := userService.Sync(c.Request.Context(), identity); err != nil {
				log.Error("failed to sync user", zap.String("user_id", identity.UserID), zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
				return
			}
			synced.Set(identity.UserID, struct{}{})
		}

		c.Set(userIDKey, identity.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware allows requests without authentication but sets user context if present
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		if userID, err := authService.UserIDFromToken(tokenString); err == nil {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(userService service.UserService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := RequireUserID(c)
		if !ok {
			c.Abort()
			return
		}
		isAdmin, err := userService.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			log.Error("failed to check admin role", zap.String("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request once it has been served, along with any
// errors handlers attached to the context.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if userID := GetUserID(c); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			errs := make([]error, len(c.Errors))
			for i, e := range c.Errors {
				errs[i] = e.Err
			}
			fields = append(fields, zap.Errors("errors", errs))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// GetUserID extracts user ID from gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RequireUserID writes a 401 when the request is not authenticated.
func RequireUserID(c *gin.Context) (string, bool) {
	userID := GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	return userID, true
}
