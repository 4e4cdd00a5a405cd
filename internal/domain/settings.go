package domain

// Settings is the singleton triage configuration. The decision step reads it
// fresh from the store on every run so admin edits apply immediately.
type Settings struct {
	AutoCloseEnabled    bool
	ConfidenceThreshold float64
	SLAHours            int
}

// DefaultSettings returns the values used when no row exists yet.
func DefaultSettings() Settings {
	return Settings{
		AutoCloseEnabled:    true,
		ConfidenceThreshold: 0.78,
		SLAHours:            24,
	}
}
