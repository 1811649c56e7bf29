package access

import (
	"crypto/subtle"
	"strings"
)

// Gate decides whether a presented admin secret grants access to catalog
// mutation and order listing.
type Gate interface {
	Authorize(secret string) bool
}

type staticSecret struct {
	secret []byte
}

// NewStaticSecret returns a Gate that accepts exactly the configured secret.
// A blank secret denies every request.
func NewStaticSecret(secret string) Gate {
	return &staticSecret{secret: []byte(strings.TrimSpace(secret))}
}

func (g *staticSecret) Authorize(secret string) bool {
	if len(g.secret) == 0 || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare(g.secret, []byte(secret)) == 1
}
