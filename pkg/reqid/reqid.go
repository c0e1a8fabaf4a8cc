// Package reqid generates request identifiers for outbound HTTP calls.
// IDs are ULIDs: lexicographically sortable and timestamped, which makes
// correlating client requests with service-side logs straightforward.
package reqid

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrInvalid reports a malformed request ID.
var ErrInvalid = errors.New("reqid: invalid request id")

var (
	globalOnce sync.Once
	global     *generator
)

// generator produces ULIDs safely under concurrency using a monotonic
// entropy source, so IDs minted in the same millisecond still sort in
// generation order.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) newAt(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a fresh request ID for the current time (UTC).
func New() string {
	globalOnce.Do(initGlobal)
	return global.newAt(time.Now().UTC())
}

// NewAt returns a request ID stamped with the provided time. Useful for
// tests that need deterministic ordering.
func NewAt(t time.Time) string {
	globalOnce.Do(initGlobal)
	return global.newAt(t.UTC())
}

// Validate checks that s is a well-formed request ID.
func Validate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return ErrInvalid
	}
	return nil
}

// Time extracts the timestamp embedded in a request ID.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalid
	}
	return time.UnixMilli(int64(u.Time())).UTC(), nil
}
