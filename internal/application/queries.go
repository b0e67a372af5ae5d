package application

import (
	"time"

	"github.com/bnema/studypomo/internal/domain"
)

type StatsReport struct {
	Period   domain.Period
	Now      time.Time
	Today    domain.TodayStats
	Bar      domain.BarChart
	Pie      domain.PieChart
	Sections domain.Sections
	Theme    domain.Theme
}

type DrainReport struct {
	Delivered int
	Failed    int
	Remaining int
	// Skipped is set when the drain did not run; Reason says why.
	Skipped bool
	Reason  string
}

type MergeReport struct {
	Pushed   int
	Fetched  int
	Sessions int
	Sections int
}

type SyncReport struct {
	Merge *MergeReport
	Drain DrainReport
}

const (
	SkipInFlight      = "drain already in progress"
	SkipGuest         = "signed out"
	SkipOffline       = "offline"
	SkipNotConfigured = "no remote configured"
)
