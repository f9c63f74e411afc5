package provider

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}

// newEventID returns evt_<unix-ms>_<9 base36 chars>.
func newEventID(now time.Time) string {
	return fmt.Sprintf("evt_%d_%s", now.UnixMilli(), randomBase36(9))
}

// newMeetingCode returns a code shaped like abc-defg-hij.
func newMeetingCode() string {
	return randomBase36(3) + "-" + randomBase36(4) + "-" + randomBase36(3)
}

func newDialInPIN() string {
	return fmt.Sprintf("%d", 100000000+rand.IntN(900000000))
}
