package middleware

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/domain/entity"
	"github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/response"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Log  *zap.Logger
	// Required rejects requests that carry no key
	Required bool
}

// bodyRecorder keeps a copy of everything written to the client
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a key already processed for the
// same admin and endpoint. Only 2xx responses are stored, so a rejected
// request can be retried with the same key once it is fixed.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			if cfg.Required {
				response.BadRequest(c, IdempotencyKeyHeader+" header is required for this request")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		userID, ok := c.Get("user_id")
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		uid, ok := userID.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "Invalid user ID")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		endpoint := c.Request.Method + " " + c.FullPath()

		existing, err := cfg.Repo.FindLive(ctx, key, uid, endpoint, time.Now())
		switch {
		case errors.Is(err, repository.ErrKeyReused):
			response.Error(c, apperror.NewConflictError(IdempotencyKeyHeader+" was already used for another request"))
			c.Abort()
			return
		case err != nil:
			log.Error("idempotency lookup failed", zap.Error(err))
			response.InternalServerError(c, "Failed to check idempotency key")
			c.Abort()
			return
		case existing != nil:
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		rec := &bodyRecorder{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		err = cfg.Repo.Save(ctx, &entity.IdempotencyKey{
			Key:          key,
			UserID:       uid,
			Endpoint:     endpoint,
			ResponseCode: status,
			ResponseBody: rec.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		})
		if err != nil {
			log.Warn("idempotency key not stored", zap.String("key", key), zap.Error(err))
		}
	}
}

// IdempotencyRequired is Idempotency with a mandatory key
func IdempotencyRequired(cfg IdempotencyConfig) gin.HandlerFunc {
	cfg.Required = true
	return Idempotency(cfg)
}

// SweepIdempotencyKeys deletes expired keys every interval until ctx is done
func SweepIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, every time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				log.Warn("idempotency sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("idempotency keys expired", zap.Int64("deleted", n))
			}
		}
	}
}
