package services

import (
	"sort"
	"time"

	"github.com/NeuraX-HQ/neurax-web-app/models"
)

const dateLayout = "2006-01-02"

func dateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LoggedDays marks every calendar day in loc that has at least one entry.
func LoggedDays(entries []models.MealLogEntry, loc *time.Location) map[string]bool {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[dateKey(e.Timestamp, loc)] = true
	}
	return days
}

// CurrentStreak counts consecutive logged days ending today. An unlogged today does
// not break the streak yet: counting then starts from yesterday.
func CurrentStreak(logged map[string]bool, now time.Time) int {
	cursor := startOfDay(now)
	if !logged[cursor.Format(dateLayout)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	streak := 0
	for logged[cursor.Format(dateLayout)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func LongestStreak(logged map[string]bool) int {
	dates := make([]time.Time, 0, len(logged))
	for key, ok := range logged {
		if !ok {
			continue
		}
		d, err := time.Parse(dateLayout, key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func weekStart(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekView returns the Monday-start week containing now, shifted by offset weeks.
func WeekView(logged map[string]bool, now time.Time, offset int) []models.WeekDay {
	today := startOfDay(now)
	start := weekStart(now).AddDate(0, 0, 7*offset)
	days := make([]models.WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		key := d.Format(dateLayout)
		future := d.After(today)
		days = append(days, models.WeekDay{
			Date:       key,
			Weekday:    d.Weekday().String()[:3],
			Logged:     logged[key] && !future,
			IsToday:    d.Equal(today),
			IsFuture:   future,
			Selectable: !future,
		})
	}
	return days
}
