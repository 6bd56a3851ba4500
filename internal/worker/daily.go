package worker

import "time"

// dailyGracePeriod prevents duplicate runs within the same day when the
// scheduler check lands in the target hour more than once.
const dailyGracePeriod = 20 * time.Hour

// ShouldRunDaily reports whether a once-per-day task scheduled for the given
// hour is due. A task is due when the current hour matches and it has not
// already run within the grace period.
func ShouldRunDaily(now time.Time, hour int, lastRun time.Time) bool {
	if now.Hour() != hour {
		return false
	}

	if !lastRun.IsZero() && now.Sub(lastRun) <= dailyGracePeriod {
		return false
	}

	return true
}
