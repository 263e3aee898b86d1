// Package marketclock maps wall-clock time onto US equity trading sessions.
package marketclock

import (
	"time"

	"github.com/Florana1/market-analyser/internal/model"
)

// exchangeTZ is the home timezone of the fund's listing exchange.
const exchangeTZ = "America/New_York"

// Clock determines the current market session. Pure apart from the
// injectable time source; no I/O, no error paths.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Clock in the exchange timezone using the real time source.
func New() *Clock {
	loc, err := time.LoadLocation(exchangeTZ)
	if err != nil {
		// The IANA zone is compiled into modern Go distributions; a UTC
		// fallback keeps the function total if the host zoneinfo is broken.
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// WithNow returns a copy using the given time source. Tests use this to pin
// the session to a known instant.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	return &Clock{loc: c.loc, now: now}
}

// Session classifies the current instant. Boundaries are exchange-local:
// pre 04:00-09:30, open 09:30-16:00, after 16:00-20:00, closed otherwise.
// Weekends are closed regardless of time of day.
func (c *Clock) Session() model.SessionState {
	now := c.now().In(c.loc)

	state := model.SessionState{
		Session:         model.SessionClosed,
		Label:           "Market Closed",
		RefreshInterval: 300,
		LocalTime:       now.Format("03:04:05 PM ET"),
	}

	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		state.Label = "Market Closed (Weekend)"
		return state
	}

	minute := now.Hour()*60 + now.Minute()
	switch {
	case minute >= 4*60 && minute < 9*60+30:
		state.Session = model.SessionPre
		state.Label = "Pre-Market"
		state.RefreshInterval = 120
	case minute >= 9*60+30 && minute < 16*60:
		state.Session = model.SessionOpen
		state.Label = "Market Open"
		state.RefreshInterval = 75
	case minute >= 16*60 && minute < 20*60:
		state.Session = model.SessionAfter
		state.Label = "After-Hours"
		state.RefreshInterval = 120
	}
	return state
}
