package domain

import (
	"fmt"
	"strings"
	"time"
)

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	default:
		return "", newValidationError("period", fmt.Sprintf("unknown period %q", raw))
	}
}

const (
	firstChartHour = 6
	lastChartHour  = 23
)

type TodayStats struct {
	Sessions          int
	Minutes           int
	ContinuousMinutes int
}

func ComputeTodayStats(sessions []Session, now time.Time, continuousSeconds int) TodayStats {
	today := FormatDate(now)
	stats := TodayStats{ContinuousMinutes: continuousSeconds / 60}
	for _, s := range sessions {
		if s.Date != today {
			continue
		}
		stats.Sessions++
		stats.Minutes += s.Duration
	}
	return stats
}

// BarChart holds per-bucket minutes split by focus level.
type BarChart struct {
	Period     Period
	Labels     []string
	Focused    []int
	Normal     []int
	Distracted []int
}

func (c BarChart) Total(i int) int {
	return c.Focused[i] + c.Normal[i] + c.Distracted[i]
}

func (c *BarChart) add(label string, sessions []Session) {
	var focused, normal, distracted int
	for _, s := range sessions {
		switch s.Focus {
		case FocusFocused:
			focused += s.Duration
		case FocusNormal:
			normal += s.Duration
		case FocusDistracted:
			distracted += s.Duration
		}
	}
	c.Labels = append(c.Labels, label)
	c.Focused = append(c.Focused, focused)
	c.Normal = append(c.Normal, normal)
	c.Distracted = append(c.Distracted, distracted)
}

func BuildBarChart(sessions []Session, period Period, now time.Time) (BarChart, error) {
	chart := BarChart{Period: period}

	switch period {
	case PeriodToday:
		today := FormatDate(now)
		for h := firstChartHour; h <= lastChartHour; h++ {
			chart.add(fmt.Sprintf("%02d:00", h), filter(sessions, func(s Session) bool {
				return s.Date == today && s.RecordedAt().In(now.Location()).Hour() == h
			}))
		}
	case PeriodWeek:
		for i := 6; i >= 0; i-- {
			day := FormatDate(now.AddDate(0, 0, -i))
			chart.add(now.AddDate(0, 0, -i).Format("01/02"), filter(sessions, func(s Session) bool {
				return s.Date == day
			}))
		}
	case PeriodMonth:
		for i := 3; i >= 0; i-- {
			end := now.AddDate(0, 0, -7*i)
			start := end.AddDate(0, 0, -6)
			from, to := FormatDate(start), FormatDate(end)
			chart.add(start.Format("01/02")+"~", filter(sessions, func(s Session) bool {
				return s.Date >= from && s.Date <= to
			}))
		}
	case PeriodYear:
		for i := 11; i >= 0; i-- {
			first := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
			prefix := first.Format("2006-01")
			chart.add(first.Format("Jan"), filter(sessions, func(s Session) bool {
				return strings.HasPrefix(s.Date, prefix)
			}))
		}
	default:
		return BarChart{}, newValidationError("period", fmt.Sprintf("unknown period %q", period))
	}

	return chart, nil
}

type PieSlice struct {
	Section string
	Minutes int
	Color   string
}

type PieChart struct {
	Period Period
	Slices []PieSlice
}

func (c PieChart) TotalMinutes() int {
	total := 0
	for _, slice := range c.Slices {
		total += slice.Minutes
	}
	return total
}

// BuildPieChart sums minutes per section in first-seen order.
func BuildPieChart(sessions []Session, sections Sections, period Period, now time.Time) (PieChart, error) {
	filtered, err := FilterSessions(sessions, period, now)
	if err != nil {
		return PieChart{}, err
	}

	chart := PieChart{Period: period}
	index := map[string]int{}
	for _, s := range filtered {
		name := s.SectionOrDefault()
		i, ok := index[name]
		if !ok {
			i = len(chart.Slices)
			index[name] = i
			chart.Slices = append(chart.Slices, PieSlice{Section: name, Color: sections.ColorFor(name, i)})
		}
		chart.Slices[i].Minutes += s.Duration
	}
	return chart, nil
}

func FilterSessions(sessions []Session, period Period, now time.Time) ([]Session, error) {
	var since string
	switch period {
	case PeriodToday:
		today := FormatDate(now)
		return filter(sessions, func(s Session) bool { return s.Date == today }), nil
	case PeriodWeek:
		since = FormatDate(now.AddDate(0, 0, -7))
	case PeriodMonth:
		since = FormatDate(now.AddDate(0, 0, -30))
	case PeriodYear:
		since = FormatDate(now.AddDate(-1, 0, 0))
	default:
		return nil, newValidationError("period", fmt.Sprintf("unknown period %q", period))
	}
	return filter(sessions, func(s Session) bool { return s.Date >= since }), nil
}

func filter(sessions []Session, keep func(Session) bool) []Session {
	out := make([]Session, 0)
	for _, s := range sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
