package browse

import (
	"fmt"
	"time"

	"github.com/existflow/upcycle/internal/model"
)

const (
	LabelToday     = "Hari Ini"
	LabelYesterday = "Kemarin"
	LabelThisWeek  = "Minggu Ini"
	LabelJustNow   = "Baru saja"
)

var months = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// FormatDate renders a date as "02 Jan 2006" with Indonesian month names
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// Group is a run of events sharing a date label
type Group struct {
	Label  string
	Events []model.ActivityEvent
}

// GroupActivities buckets events by calendar day relative to now. Groups
// appear in order of their first event; events keep their order.
func GroupActivities(events []model.ActivityEvent, now time.Time) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, e := range events {
		label := DateLabel(e.Time().In(now.Location()), now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}

// DateLabel names the day of t as seen from now
func DateLabel(t, now time.Time) string {
	switch {
	case sameDay(t, now):
		return LabelToday
	case sameDay(t, now.Add(-24*time.Hour)):
		return LabelYesterday
	case sameWeek(t, now):
		return LabelThisWeek
	default:
		return FormatDate(t)
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func sameWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// RelativeTime describes how long ago t was
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return LabelJustNow
	case d < time.Hour:
		return fmt.Sprintf("%d menit lalu", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d jam lalu", int(d/time.Hour))
	case d < 48*time.Hour:
		return LabelYesterday
	default:
		return FormatDate(t.In(now.Location()))
	}
}

// ActivityLabel is the short tag shown for an event type
func ActivityLabel(t model.ActivityType) string {
	switch t {
	case model.ActivityProjectStart:
		return "Mulai Proyek"
	case model.ActivityProjectComplete:
		return "Selesai"
	case model.ActivityCommunityPost:
		return "Posting"
	case model.ActivityCommunityLike:
		return "Like"
	case model.ActivityBadgeUnlock:
		return "Badge"
	default:
		return "Scan"
	}
}

// FilterActivities keeps the events of one type; nil keeps all of them
func FilterActivities(events []model.ActivityEvent, typ *model.ActivityType) []model.ActivityEvent {
	if typ == nil {
		return append([]model.ActivityEvent(nil), events...)
	}
	var out []model.ActivityEvent
	for _, e := range events {
		if e.Type == *typ {
			out = append(out, e)
		}
	}
	return out
}
