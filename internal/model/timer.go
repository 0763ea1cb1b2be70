package model

import (
	"cmp"
	"slices"
	"time"
)

type timerKind uint8

const (
	timerDashEnd timerKind = iota
	timerStealthEnd
	timerShieldExpire
	timerChargeEnd
)

func (k timerKind) String() string {
	switch k {
	case timerDashEnd:
		return "dash_end"
	case timerStealthEnd:
		return "stealth_end"
	case timerShieldExpire:
		return "shield_expire"
	case timerChargeEnd:
		return "charge_end"
	default:
		return "unknown"
	}
}

// timer is a pending state transition, fired from Character.Update once the
// game clock reaches expiresAt. Nothing runs outside the update loop, so a
// destroyed character simply never fires its timers.
type timer struct {
	kind      timerKind
	expiresAt time.Duration
	onExpire  func(*Character)
}

// timerSet holds at most one pending timer per kind.
type timerSet struct {
	entries []timer
}

// schedule adds a timer, replacing a pending one of the same kind.
func (ts *timerSet) schedule(kind timerKind, at time.Duration, fn func(*Character)) {
	ts.cancel(kind)
	ts.entries = append(ts.entries, timer{kind: kind, expiresAt: at, onExpire: fn})
}

func (ts *timerSet) cancel(kind timerKind) {
	ts.entries = slices.DeleteFunc(ts.entries, func(t timer) bool { return t.kind == kind })
}

func (ts *timerSet) pending(kind timerKind) (time.Duration, bool) {
	for _, t := range ts.entries {
		if t.kind == kind {
			return t.expiresAt, true
		}
	}
	return 0, false
}

// expire removes and returns every timer due at now, earliest first.
func (ts *timerSet) expire(now time.Duration) []timer {
	var due []timer
	ts.entries = slices.DeleteFunc(ts.entries, func(t timer) bool {
		if t.expiresAt <= now {
			due = append(due, t)
			return true
		}
		return false
	})
	slices.SortFunc(due, func(a, b timer) int {
		return cmp.Or(cmp.Compare(a.expiresAt, b.expiresAt), cmp.Compare(a.kind, b.kind))
	})
	return due
}

func (ts *timerSet) clear() {
	ts.entries = nil
}

func (ts *timerSet) len() int {
	return len(ts.entries)
}
