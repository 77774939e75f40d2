package cache

import (
	"time"
)

// TimeUntilNextISTClose returns the duration until the next NSE close
// (15:30 IST plus a settlement buffer). Daily bars cannot change until the
// next close, so cached history stays valid until then.
func TimeUntilNextISTClose() time.Duration {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}
	now := time.Now().In(loc)

	// 16:00 IST: close at 15:30 plus time for the provider to settle final bars
	next := time.Date(now.Year(), now.Month(), now.Day(), 16, 0, 0, 0, loc)
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
