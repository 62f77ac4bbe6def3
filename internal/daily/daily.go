// internal/daily/daily.go
//
// Daily target rotation. Every caller with the same salt and word list
// gets the same target for a given UTC day, without any stored state.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"
)

// ErrNoWords is returned by Pick for an empty word list.
var ErrNoWords = errors.New("daily: word list is empty")

// Puzzle identifies one day's target.
type Puzzle struct {
	Date  string // YYYY-MM-DD, UTC
	Index int    // position in the list the target was picked from
	Word  string
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex maps a date onto [0, n) using HMAC-SHA256(salt, date key).
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(date)))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Pick returns the puzzle for the day containing now.
func Pick(now time.Time, salt string, list []string) (Puzzle, error) {
	if len(list) == 0 {
		return Puzzle{}, ErrNoWords
	}
	i := WordIndex(now, salt, len(list))
	return Puzzle{Date: DateKey(now), Index: i, Word: list[i]}, nil
}
