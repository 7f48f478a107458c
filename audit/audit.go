// Package audit appends security-relevant actions to the configured sink.
// Recording is best effort: a failing sink is logged and never reported to
// the caller.
package audit

import (
	"context"
	"time"

	"SmartCare360/logger"
	"SmartCare360/models"
	"SmartCare360/store"

	"github.com/gin-gonic/gin"
)

type ctxKey struct{}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// ClientIP returns the address stored by WithClientIP, or "".
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}

// ClientIPMiddleware copies the request's client address into its context.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithClientIP(c.Request.Context(), c.ClientIP()))
		c.Next()
	}
}

type Recorder struct {
	sink store.AuditStore
	log  *logger.Logger
	now  func() time.Time
}

func NewRecorder(sink store.AuditStore, log *logger.Logger) *Recorder {
	return &Recorder{sink: sink, log: log, now: time.Now}
}

func (r *Recorder) Record(ctx context.Context, userID, action, details string) {
	entry := &models.AuditLogEntry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ClientIP(ctx),
		CreatedAt: r.now().UTC(),
	}
	err := r.sink.AppendAudit(ctx, entry)
	if err != nil {
		r.log.WithComponent("audit").WithError(err).WithField("action", action).Error("Failed to append audit entry")
	}
	r.log.Audit(userID, action, details, err == nil)
}
