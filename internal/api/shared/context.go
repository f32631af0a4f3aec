package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/kaabil/contentgen-api/internal/domain"
)

// ContextKey is the type of request-scoped values set by the middleware.
type ContextKey string

const (
	// IdentityContextKey holds the verified domain.Identity of the caller
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID
	TraceIDLength = 16 // 32 hex characters
)

// WithTraceID stores traceID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// WithIdentity stores the verified caller in the context.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, IdentityContextKey, identity)
}

// IdentityFromContext returns the verified caller, if the auth middleware
// resolved one.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(domain.Identity)
	if !ok || identity.ID == uuid.Nil {
		return domain.Identity{}, false
	}
	return identity, true
}

// NewTraceID returns a random 32-character hex string. If the system random
// source fails it falls back to a time-based value, never a constant.
func NewTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}

	now := time.Now()
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(b[12:16], uint32(now.Unix()))
	return hex.EncodeToString(b)
}
