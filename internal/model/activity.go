package model

import "time"

// ActivityType classifies an activity event
type ActivityType int

const (
	ActivityScan ActivityType = iota
	ActivityProjectStart
	ActivityProjectComplete
	ActivityCommunityPost
	ActivityCommunityLike
	ActivityBadgeUnlock
)

var activityNames = [...]string{
	ActivityScan:            "SCAN",
	ActivityProjectStart:    "PROJECT_START",
	ActivityProjectComplete: "PROJECT_COMPLETE",
	ActivityCommunityPost:   "COMMUNITY_POST",
	ActivityCommunityLike:   "COMMUNITY_LIKE",
	ActivityBadgeUnlock:     "BADGE_UNLOCK",
}

// String returns the stored name of the type
func (t ActivityType) String() string {
	if t < 0 || int(t) >= len(activityNames) {
		return activityNames[ActivityScan]
	}
	return activityNames[t]
}

// ParseActivityType maps a stored name onto a type. Unknown names
// report false and yield ActivityScan.
func ParseActivityType(s string) (ActivityType, bool) {
	for i, name := range activityNames {
		if name == s {
			return ActivityType(i), true
		}
	}
	return ActivityScan, false
}

// Color returns the display colour of the type
func (t ActivityType) Color() Color {
	switch t {
	case ActivityProjectStart:
		return 0xFFFF9800
	case ActivityProjectComplete:
		return 0xFF4CAF50
	case ActivityCommunityPost:
		return 0xFF9C27B0
	case ActivityCommunityLike:
		return 0xFFE91E63
	case ActivityBadgeUnlock:
		return 0xFFFFD700
	default:
		return 0xFF2196F3
	}
}

// ActivityEvent is one entry in a user's append-only history
type ActivityEvent struct {
	ID          string
	Type        ActivityType
	Title       string
	Description string
	Timestamp   int64 // epoch millis
}

// Time returns the event timestamp as a time.Time
func (e ActivityEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
