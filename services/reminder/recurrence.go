package reminder

import (
	"sort"
	"time"

	"medivault/models"
)

// NextTrigger computes the next trigger instant for a reminder given "now".
// The second return value is false when the schedule is exhausted; the
// caller is then expected to deactivate the reminder.
//
// daily/weekly advance by a flat offset from "now" rather than anchoring to
// a clock time, so the effective time drifts when ticks fire late. Known
// behavior, kept deliberately.
func NextTrigger(r *models.Reminder, now time.Time) (time.Time, bool) {
	switch r.Frequency {
	case models.FrequencyOnce:
		if r.ScheduledFor != nil && r.ScheduledFor.After(now) {
			return *r.ScheduledFor, true
		}
		return time.Time{}, false

	case models.FrequencyDaily:
		return now.Add(24 * time.Hour), true

	case models.FrequencyWeekly:
		return now.Add(7 * 24 * time.Hour), true

	case models.FrequencyMonthly:
		return addMonthClamped(now), true

	case models.FrequencyCustom:
		return nextCustomSlot(r.TimeOfDay, now)
	}
	return time.Time{}, false
}

// addMonthClamped advances by one calendar month, clamping to the target
// month's last day when it is shorter (Jan 31 -> Feb 28/29).
func addMonthClamped(now time.Time) time.Time {
	year, month, day := now.Date()
	firstOfNext := time.Date(year, month+1, 1, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
	lastDay := daysIn(firstOfNext.Year(), firstOfNext.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// nextCustomSlot scans the time-of-day slots in ascending order for the
// first one strictly later than now's minutes-since-midnight. When every
// slot has passed for today, the first slot tomorrow is used. An empty slot
// list exhausts the reminder.
func nextCustomSlot(slots []models.TimeSlot, now time.Time) (time.Time, bool) {
	if len(slots) == 0 {
		return time.Time{}, false
	}

	ordered := make([]models.TimeSlot, len(slots))
	copy(ordered, slots)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].MinutesSinceMidnight() < ordered[j].MinutesSinceMidnight()
	})

	nowMinutes := now.Hour()*60 + now.Minute()
	for _, slot := range ordered {
		if slot.MinutesSinceMidnight() > nowMinutes {
			return at(now, slot), true
		}
	}
	return at(now.AddDate(0, 0, 1), ordered[0]), true
}

func at(day time.Time, slot models.TimeSlot) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), slot.Hour, slot.Minute, 0, 0, day.Location())
}
