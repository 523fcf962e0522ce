package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkita/salonkita-api/internal/domain/entity"
	"github.com/salonkita/salonkita-api/internal/domain/repository"
)

const (
	// IdempotencyKeyHeader is the HTTP header clients send the key in
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long recorded keys stay replayable
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// responseWriter wraps gin.ResponseWriter to capture the response body
// so it can be replayed for a retried key
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// replayIfSeen returns true when the key was already processed for this
// user and the cached response was written. Unexpired keys replay; an
// expired key falls through and the request runs again.
func replayIfSeen(c *gin.Context, repo repository.IdempotencyRepository, key string, userID uuid.UUID) (bool, error) {
	existing, err := repo.GetByKey(c.Request.Context(), key, userID)
	if err != nil {
		return false, err
	}
	if existing == nil || existing.IsExpired() {
		return false, nil
	}

	c.Header("X-Idempotency-Replayed", "true")
	c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
	c.Abort()
	return true, nil
}

// recordResponse runs the request with a capturing writer and stores the
// outcome under the key. Storage failure is not surfaced; the response
// already went to the client, the retry just won't replay.
func recordResponse(c *gin.Context, repo repository.IdempotencyRepository, key string, userID uuid.UUID) {
	capture := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
	c.Writer = capture

	c.Next()

	_ = repo.Create(c.Request.Context(), &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     c.Request.Method + " " + c.FullPath(),
		ResponseCode: c.Writer.Status(),
		ResponseBody: capture.body.String(),
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	})
}

// Idempotency replays cached responses for repeated Idempotency-Key
// values on mutating requests. Requests without a key pass through.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "PATCH":
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.Next()
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.Next()
			return
		}

		if replayed, err := replayIfSeen(c, config.Repo, key, userID); err != nil || replayed {
			if err != nil {
				c.Next()
			}
			return
		}

		recordResponse(c, config.Repo, key, userID)
	}
}

// IdempotencyRequired rejects POST requests that arrive without an
// Idempotency-Key. Transaction creation uses this so a retried request
// can never settle the same sale twice.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(400, gin.H{
				"success": false,
				"message": "Idempotency-Key header is required for this request",
			})
			return
		}

		userIDValue, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}
		userID, ok := userIDValue.(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "Invalid user ID",
			})
			return
		}

		replayed, err := replayIfSeen(c, config.Repo, key, userID)
		if err != nil {
			c.AbortWithStatusJSON(500, gin.H{
				"success": false,
				"message": "Failed to check idempotency key",
			})
			return
		}
		if replayed {
			return
		}

		recordResponse(c, config.Repo, key, userID)
	}
}
