package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "keepmoving"
	DefaultAPIURL     = "http://localhost:3333"
	DefaultConfigPath = "~/.config/keepmoving/config.yaml"
	Version           = "v0.1.0"

	// DateFormat is the date format the goals API uses for summary days (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Query keys shared by the cache and its readers
	QueryKeyPendingGoals = "pending-goals"
	QueryKeySummary      = "summary"

	// Goal draft constraints
	MinWeeklyFrequency     = 1
	MaxWeeklyFrequency     = 7
	DefaultWeeklyFrequency = 5

	// Notification constants
	ToastDuration = 4 * time.Second
	MaxToasts     = 3
)

// Session States
const (
	StateLoading SessionState = iota
	StateEmpty
	StateSummary
	StateError
)
