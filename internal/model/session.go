package model

// Session identifies the current phase of the trading day.
type Session string

const (
	SessionPre    Session = "pre"
	SessionOpen   Session = "open"
	SessionAfter  Session = "after"
	SessionClosed Session = "closed"
)

// SessionState describes the market session at a point in time, plus the
// refresh cadence the presentation layer should use for it.
type SessionState struct {
	Session         Session `json:"session"`
	Label           string  `json:"label"`
	RefreshInterval int     `json:"refresh_interval"` // seconds
	LocalTime       string  `json:"time_et"`
}
