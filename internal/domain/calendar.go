package domain

import "time"

// Day is one entry of the day-picker calendar.
type Day struct {
	Weekday   string
	MonthDay  int
	IsToday   bool
	IsChosen  bool
	IsWeekend bool
	Timestamp int64 // unix seconds at local midnight
}

// Short weekday names, capitalized the way the calendar shows them.
var ruWeekdays = [7]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// Midnight truncates t to the start of its day in its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CalendarDays builds n consecutive day entries starting at start.
// The first entry is tagged as today; the entry matching chosen (by
// midnight) is tagged as chosen.
func CalendarDays(start time.Time, n int, chosen time.Time) []Day {
	days := make([]Day, 0, n)
	day := Midnight(start)
	chosenMidnight := Midnight(chosen)
	for i := 0; i < n; i++ {
		wd := day.Weekday()
		days = append(days, Day{
			Weekday:   ruWeekdays[wd],
			MonthDay:  day.Day(),
			IsToday:   i == 0,
			IsChosen:  day.Equal(chosenMidnight),
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
			Timestamp: day.Unix(),
		})
		day = day.AddDate(0, 0, 1)
	}
	return days
}

// PluralizeMinutes declines the Russian word for "minute" after a count.
func PluralizeMinutes(n int) string {
	n = n % 100
	if n >= 11 && n <= 14 {
		return "минут"
	}
	switch n % 10 {
	case 1:
		return "минута"
	case 2, 3, 4:
		return "минуты"
	default:
		return "минут"
	}
}
