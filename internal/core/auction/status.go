package auction

import (
	"fmt"
	"time"
)

// Status is the lifecycle phase of an auction. It is derived from the clock
// on every access and never stored.
type Status int

const (
	StatusPending Status = iota
	StatusOpen
	StatusClosed
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOpen:
		return "open"
	case StatusClosed:
		return "closed"
	case StatusExpired:
		return "expired"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StatusAt returns the phase of a at now.
//
//	pending  now < start
//	open     start <= now < end
//	closed   end <= now < end+closedDuration
//	expired  now >= end+closedDuration
func StatusAt(a *Auction, now time.Time, closedDuration time.Duration) Status {
	switch {
	case now.Before(a.StartTime):
		return StatusPending
	case now.Before(a.EndTime):
		return StatusOpen
	case now.Before(a.EndTime.Add(closedDuration)):
		return StatusClosed
	default:
		return StatusExpired
	}
}

// StatusIn reports whether s is one of allowed.
func StatusIn(s Status, allowed ...Status) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
