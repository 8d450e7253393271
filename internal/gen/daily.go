package gen

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/mastermind/internal/pins"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyIndex returns a deterministic state index for a date using a keyed
// BLAKE2b-256 MAC of the date key, reduced modulo the number of states.
func DailyIndex(date time.Time, salt string) int {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an oversized key, which is folded above.
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(pins.NumStates))
}

// Daily yields the same secret for every caller on a given UTC date.
type Daily struct {
	Salt string
	Now  func() time.Time
}

// NewDaily returns a Daily generator on the wall clock.
func NewDaily(salt string) *Daily {
	return &Daily{Salt: salt, Now: time.Now}
}

// Date returns the current date key.
func (d *Daily) Date() string {
	return DateKey(d.now())
}

func (d *Daily) Generate() pins.PinState {
	return pins.FromIndex(DailyIndex(d.now(), d.Salt))
}

func (d *Daily) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
