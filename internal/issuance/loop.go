// Package issuance drives the timed refresh of attendance codes.
//
// Loop is a value type: every event method returns the next Loop and the
// Effect the caller must carry out. Effects and the events they later
// produce carry a generation number; events from an older generation are
// ignored, so a stopped or unmounted loop cannot be revived by a late tick
// or a late backend response.
package issuance

import (
	"time"

	"github.com/felixgeelhaar/uniattend/internal/domain"
	"github.com/felixgeelhaar/uniattend/internal/errors"
)

const (
	// Window is how long a code is displayed before it is re-issued.
	Window = 10 * time.Second
	// TickInterval is the countdown resolution.
	TickInterval = time.Second
	// Countdown is the number of ticks per window.
	Countdown = int(Window / TickInterval)
)

// State of the loop.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateDisplaying
	StateStopped
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateDisplaying:
		return "displaying"
	case StateStopped:
		return "stopped"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Effect is what the caller must do after an event. Request means issue
// one backend call and report it with Resolve(Gen, ...); Arm means
// schedule one Tick(Gen) after TickInterval.
type Effect struct {
	Request bool
	Arm     bool
	Gen     uint64
}

// None reports whether the effect asks for nothing.
func (e Effect) None() bool {
	return !e.Request && !e.Arm
}

// Loop is the state of one code issuance screen.
type Loop struct {
	scheduleRef domain.ID
	state       State
	gen         uint64
	countdown   int
	code        Code
	hasCode     bool
	err         error
	terminal    bool
	unmounted   bool
	requests    int
}

// New returns an idle loop for scheduleRef.
func New(scheduleRef domain.ID) Loop {
	return Loop{scheduleRef: scheduleRef}
}

// Mount starts the loop. It fails terminally when the principal is not
// authorized or the schedule reference or credential is missing.
func (l Loop) Mount(authorized bool, credential string) (Loop, Effect) {
	if l.unmounted || l.state != StateIdle {
		return l, Effect{}
	}
	switch {
	case !authorized:
		return l.fail(errors.NewForbiddenError(domain.RoleTeacher), true), Effect{}
	case l.scheduleRef.IsZero():
		return l.fail(errors.NewMissingContextError("no schedule selected"), true), Effect{}
	case credential == "":
		return l.fail(errors.NewMissingContextError("no access token"), true), Effect{}
	}
	return l.request()
}

// Tick advances the countdown. Reaching zero while displaying issues
// exactly one request and resets the countdown.
func (l Loop) Tick(gen uint64) (Loop, Effect) {
	if l.unmounted || gen != l.gen || l.state != StateDisplaying {
		return l, Effect{}
	}
	l.countdown--
	if l.countdown <= 0 {
		return l.request()
	}
	return l, Effect{Arm: true, Gen: l.gen}
}

// Resolve reports the outcome of the request issued for gen. raw is the
// backend's qrCode value.
func (l Loop) Resolve(gen uint64, raw string, err error, now time.Time) (Loop, Effect) {
	if l.unmounted || gen != l.gen || l.state != StateRequesting {
		return l, Effect{}
	}
	if err != nil {
		return l.fail(err, sessionLost(err)), Effect{}
	}
	code, err := NewCode(raw, l.scheduleRef, now)
	if err != nil {
		return l.fail(err, false), Effect{}
	}
	l.code = code
	l.hasCode = true
	l.err = nil
	l.state = StateDisplaying
	l.countdown = Countdown
	return l, Effect{Arm: true, Gen: l.gen}
}

// Stop freezes the countdown at zero. The pending tick and any request
// in flight become stale.
func (l Loop) Stop() (Loop, Effect) {
	if l.unmounted || (l.state != StateDisplaying && l.state != StateRequesting) {
		return l, Effect{}
	}
	l.gen++
	l.state = StateStopped
	l.countdown = 0
	return l, Effect{}
}

// Resume issues a fresh request after Stop.
func (l Loop) Resume() (Loop, Effect) {
	if l.unmounted || l.state != StateStopped {
		return l, Effect{}
	}
	return l.request()
}

// Retry re-enters Requesting after a recoverable failure.
func (l Loop) Retry() (Loop, Effect) {
	if l.unmounted || l.state != StateError || l.terminal {
		return l, Effect{}
	}
	return l.request()
}

// Unmount ends the loop. Every later event is ignored.
func (l Loop) Unmount() Loop {
	if l.unmounted {
		return l
	}
	l.gen++
	l.unmounted = true
	if l.state == StateDisplaying || l.state == StateRequesting {
		l.state = StateStopped
		l.countdown = 0
	}
	return l
}

func (l Loop) request() (Loop, Effect) {
	l.gen++
	l.state = StateRequesting
	l.countdown = Countdown
	l.err = nil
	l.requests++
	return l, Effect{Request: true, Gen: l.gen}
}

// sessionLost reports failures that only a new sign-in can fix.
func sessionLost(err error) bool {
	return errors.HasCode(err, errors.ErrCodeSessionExpired) || errors.HasCode(err, errors.ErrCodeNotLoggedIn)
}

func (l Loop) fail(err error, terminal bool) Loop {
	l.state = StateError
	l.err = err
	l.terminal = terminal
	return l
}

// State returns the current state.
func (l Loop) State() State { return l.state }

// Gen returns the current generation.
func (l Loop) Gen() uint64 { return l.gen }

// Countdown returns the seconds left before re-issuance.
func (l Loop) Countdown() int { return l.countdown }

// ScheduleRef returns the class session codes are issued for.
func (l Loop) ScheduleRef() domain.ID { return l.scheduleRef }

// Code returns the most recent code, which stays available while a
// replacement is requested.
func (l Loop) Code() (Code, bool) { return l.code, l.hasCode }

// Err returns the failure shown in StateError.
func (l Loop) Err() error { return l.err }

// Terminal reports whether the failure cannot be retried.
func (l Loop) Terminal() bool { return l.terminal }

// Unmounted reports whether Unmount was called.
func (l Loop) Unmounted() bool { return l.unmounted }

// Requests counts the backend calls the loop asked for.
func (l Loop) Requests() int { return l.requests }
