package models

import (
	"sort"
	"time"

	"github.com/julianstephens/keepmoving/internal/constants"
)

// CreateGoalInput is the payload sent to the goals API when a goal is created
type CreateGoalInput struct {
	Title                  string `json:"title"`
	DesiredWeeklyFrequency int    `json:"desiredWeeklyFrequency"`
}

// PendingGoal is a goal that has not reached its weekly frequency yet
type PendingGoal struct {
	ID                     string `json:"id"`
	Title                  string `json:"title"`
	DesiredWeeklyFrequency int    `json:"desiredWeeklyFrequency"`
	CompletionCount        int    `json:"completionCount"`
}

// Remaining returns how many completions are still needed this week
func (g PendingGoal) Remaining() int {
	if g.CompletionCount >= g.DesiredWeeklyFrequency {
		return 0
	}
	return g.DesiredWeeklyFrequency - g.CompletionCount
}

// GoalCompletion is a single completion listed in the weekly summary
type GoalCompletion struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completedAt"`
}

// Summary is the weekly progress report
type Summary struct {
	Completed   int                         `json:"completed"`
	Total       int                         `json:"total"`
	GoalsPerDay map[string][]GoalCompletion `json:"goalsPerDay"`
}

// IsEmpty reports whether the user has no goals this week
func (s Summary) IsEmpty() bool {
	return s.Total == 0
}

// Progress returns the completed ratio in [0, 1]
func (s Summary) Progress() float64 {
	if s.Total <= 0 {
		return 0
	}
	ratio := float64(s.Completed) / float64(s.Total)
	if ratio > 1 {
		return 1
	}
	return ratio
}

// Days returns the summary days, most recent first
func (s Summary) Days() []string {
	days := make([]string, 0, len(s.GoalsPerDay))
	for day := range s.GoalsPerDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}

// DayLabel renders a summary day key (YYYY-MM-DD) as "Monday, Jan 2".
// Keys in any other format are returned unchanged.
func DayLabel(day string) string {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return day
	}
	return t.Format("Monday, Jan 2")
}
