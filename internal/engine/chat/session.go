// Package chat holds the mentor conversation layer: it assembles a
// skill-gap briefing for the external completion service and keeps per-user
// conversation state. It is the only stateful part of the engine.
package chat

import (
	"time"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// Session is one user+conversation transcript plus its system briefing.
// Sessions are created lazily on the first turn and live in the engine cache
// until their TTL evicts them; there is no explicit closed state.
type Session struct {
	Key       string        `json:"key"`
	Briefing  string        `json:"briefing"`
	Turns     []engine.Turn `json:"turns"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionKey builds the cache key for a user+conversation pair.
func SessionKey(userID, conversationID string) string {
	return userID + ":" + conversationID
}

func sessionCacheKey(key string) string {
	return engine.CacheKey("session", key)
}
