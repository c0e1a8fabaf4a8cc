package gotrue

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew is subtracted from the token expiry so callers refresh a little
// before the service would actually reject the token.
const expirySkew = 30 * time.Second

// ErrNoExpiry reports an access token whose claims carry no expiry.
var ErrNoExpiry = errors.New("gotrue: access token has no expiry claim")

// ExpiresAt reports when the session's access token expires, read from the
// token's registered claims. The signature is not verified; this is a local
// hint for scheduling RefreshSession, not an authenticity check — only the
// service decides whether a token is still good.
func (s *Session) ExpiresAt() (time.Time, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}

	return claims.ExpiresAt.Time, nil
}

// IsExpired reports whether the access token is expired or within the skew
// window of expiring. Tokens whose expiry cannot be determined are treated as
// expired, erring on the side of a refresh.
func (s *Session) IsExpired() bool {
	expiresAt, err := s.ExpiresAt()
	if err != nil {
		return true
	}
	return time.Now().After(expiresAt.Add(-expirySkew))
}
