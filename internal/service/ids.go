package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// IDSchemeUUID generates random UUID strings.
	IDSchemeUUID = "uuid"
	// IDSchemeTimestamp generates decimal epoch-millisecond strings, bumped to stay strictly increasing.
	IDSchemeTimestamp = "timestamp"
)

// IDGenerator returns a new unique identifier on each call.
type IDGenerator func() string

// NewUUIDGenerator returns a generator of random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuid.NewString
}

// NewTimestampGenerator returns a generator of millisecond timestamps that never
// repeats within the process, even when called twice in the same millisecond.
func NewTimestampGenerator(now func() time.Time) IDGenerator {
	var (
		mu   sync.Mutex
		last int64
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		ms := now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		last = ms
		return strconv.FormatInt(ms, 10)
	}
}

// NewIDGenerator returns the generator for scheme. Unknown schemes fall back to UUIDs.
func NewIDGenerator(scheme string, now func() time.Time) IDGenerator {
	if scheme == IDSchemeTimestamp {
		return NewTimestampGenerator(now)
	}
	return NewUUIDGenerator()
}
