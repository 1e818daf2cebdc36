package middleware

import (
	"net/http"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// rateLimitKey identifies the caller for the fixed window. The limiter runs
// ahead of the role middleware, so the subject is read from the token here;
// unauthenticated traffic is keyed by client IP.
func rateLimitKey(c *gin.Context) string {
	if tokenString, ok := extractToken(c); ok {
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if sub, ok := claims["sub"].(string); ok && sub != "" {
					return "ratelimit:user:" + sub
				}
			}
		}
	}
	return "ratelimit:ip:" + c.ClientIP()
}

// RateLimit applies a fixed-window limit per authenticated user (falling back
// to client IP for anonymous traffic), backed by redis so the limit holds
// across instances.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rateLimitKey(c)

		ctx := c.Request.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the API down with it
			logrus.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.Error(http.StatusTooManyRequests, "Too many requests, please slow down"))
			return
		}

		c.Next()
	}
}
