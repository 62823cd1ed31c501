package view

import (
	"fmt"
	"time"

	"newslens/app/state"
)

// RelativeTime renders ts relative to now with locale-specific wording:
// under a minute, minute/hour/day buckets, and a locale-formatted absolute
// date beyond 30 days. Future timestamps clamp to the "just now" bucket.
func RelativeTime(ts time.Time, locale state.Locale, now time.Time) string {
	strings := localized(locale)
	elapsed := now.Sub(ts)

	switch {
	case elapsed < time.Minute:
		return strings.justNow
	case elapsed < time.Hour:
		return fmt.Sprintf(strings.minutesAgo, int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf(strings.hoursAgo, int(elapsed.Hours()))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf(strings.daysAgo, int(elapsed.Hours()/24))
	default:
		return ts.Format(strings.dateLayout)
	}
}
