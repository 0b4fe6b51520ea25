package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tumai/space-api/pkg/apperror"
	"github.com/tumai/space-api/pkg/auth"
	"github.com/tumai/space-api/pkg/logger"
)

const (
	GinContextKeyIdentityID = "identityID"
	GinContextKeyRoles      = "roles"
	GinContextKeyRequestID  = "requestID"
	HeaderRequestID         = "X-Request-ID"
)

func AuthMiddleware(jwtSvc *auth.JWTService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			respondError(c, http.StatusUnauthorized, "Invalid token format")
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			logger.FromContext(c.Request.Context(), log).Warn("Rejected token", zap.Error(err))
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(GinContextKeyIdentityID, claims.Subject)
		c.Set(GinContextKeyRoles, claims.Roles)
		c.Next()
	}
}

// RequireRole rejects callers whose token does not carry role. It must run
// after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get(GinContextKeyRoles)
		granted, _ := roles.([]string)
		for _, r := range granted {
			if r == role {
				c.Next()
				return
			}
		}
		_ = c.Error(apperror.NewPermissionDenied("role '" + role + "' is required"))
		c.Abort()
	}
}

func GetIdentityIDFromGinContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(GinContextKeyIdentityID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// ErrorMiddleware renders the last error a handler attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		reqLog := logger.FromContext(c.Request.Context(), log)
		if status >= http.StatusInternalServerError {
			reqLog.Error("Request failed", err, zap.String("path", c.FullPath()))
		} else {
			reqLog.Info("Request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.String("error", err.Error()))
		}
		respondError(c, status, apperror.Description(err))
	}
}

// RequestLogger writes one line per request and propagates X-Request-ID.
// Handlers downstream find a logger carrying the request id through
// logger.FromContext.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(GinContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		reqLog := log.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), reqLog))

		c.Next()

		logger.FromContext(c.Request.Context(), reqLog).Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit allows a bounded number of requests per client IP on the routes
// it wraps. A limiter failure lets the request through.
func RateLimit(limiter RateLimiter, scope string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		allowed, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			logger.FromContext(c.Request.Context(), log).Warn("Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			respondError(c, http.StatusTooManyRequests, "Too many requests, try again later")
			return
		}
		c.Next()
	}
}
