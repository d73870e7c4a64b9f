// Package visitor derives the deduplication key for a request.
package visitor

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
)

// Unknown is returned when a request carries no address header. All such
// requests share one ledger slot.
const Unknown = "unknown"

// DevPrefix marks identities derived in development mode so local testing
// never collides with production keys in a shared ledger.
const DevPrefix = "dev-"

// Address headers in priority order.
const (
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRealIP         = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
)

// Mode is the deployment mode the identity is derived under.
type Mode int

const (
	Production Mode = iota
	Development
)

// ParseMode maps an APP_ENV style value onto a Mode. Anything that is not
// development counts as production.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return Development
	default:
		return Production
	}
}

func (m Mode) String() string {
	if m == Development {
		return "development"
	}
	return "production"
}

// Address returns the client address from the first address header present:
// the first hop of X-Forwarded-For, then X-Real-IP, then CF-Connecting-IP.
// It returns Unknown when none carries a value.
func Address(h http.Header) string {
	if xff := h.Get(HeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(h.Get(HeaderRealIP)); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(h.Get(HeaderCFConnectingIP)); ip != "" {
		return ip
	}
	return Unknown
}

// Identity returns the ledger key for a request with headers h.
func Identity(h http.Header, mode Mode) string {
	addr := Address(h)
	if mode == Development {
		return DevPrefix + addr
	}
	return addr
}

// Hasher turns identities into salted digests so raw addresses never reach
// the ledger. A Hasher with an empty salt passes identities through.
type Hasher struct {
	salt string
}

// NewHasher returns a Hasher using salt. The salt must be stable across
// restarts or every visitor is counted again.
func NewHasher(salt string) *Hasher {
	return &Hasher{salt: salt}
}

// Enabled reports whether identities are hashed.
func (h *Hasher) Enabled() bool {
	return h != nil && h.salt != ""
}

// Hash returns the first 16 hex characters of sha256(identity+salt), or
// identity unchanged when hashing is disabled.
func (h *Hasher) Hash(identity string) string {
	if !h.Enabled() {
		return identity
	}
	sum := sha256.Sum256([]byte(identity + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}
