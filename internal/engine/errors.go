package engine

import (
	"errors"
	"fmt"
)

// Reason is a machine-readable rejection code
type Reason string

const (
	// admission
	ReasonBlockedDay       Reason = "BLOCKED_DAY"
	ReasonTooSoon          Reason = "TOO_SOON"
	ReasonTooFar           Reason = "TOO_FAR"
	ReasonBadAlignment     Reason = "BAD_ALIGNMENT"
	ReasonTooShort         Reason = "TOO_SHORT"
	ReasonOverlap          Reason = "OVERLAP"
	ReasonGuestNotVerified Reason = "GUEST_NOT_VERIFIED"

	// workflow
	ReasonConflict          Reason = "CONFLICT"
	ReasonInvalidTransition Reason = "INVALID_TRANSITION"
	ReasonPostCheckIn       Reason = "POST_CHECK_IN"

	// policy validation
	ReasonBadNoticeWindow Reason = "BAD_NOTICE_WINDOW"
	ReasonBadStayMinimum  Reason = "BAD_STAY_MINIMUM"
	ReasonBadBuffer       Reason = "BAD_BUFFER"
	ReasonBadCheckTimes   Reason = "BAD_CHECK_TIMES"
	ReasonAllDaysBlocked  Reason = "ALL_DAYS_BLOCKED"
	ReasonBadPolicyEnum   Reason = "BAD_POLICY_ENUM"
)

// Rejection is an ordinary domain "no": the request or transition is not allowed.
// Two rejections match under errors.Is when their reasons are equal.
type Rejection struct {
	Reason Reason
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return "engine: rejected: " + string(r.Reason)
	}
	return fmt.Sprintf("engine: rejected: %s: %s", r.Reason, r.Detail)
}

// Is matches rejections by reason
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

func reject(reason Reason, format string, args ...interface{}) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is
var (
	ErrBlockedDay       = &Rejection{Reason: ReasonBlockedDay}
	ErrTooSoon          = &Rejection{Reason: ReasonTooSoon}
	ErrTooFar           = &Rejection{Reason: ReasonTooFar}
	ErrBadAlignment     = &Rejection{Reason: ReasonBadAlignment}
	ErrTooShort         = &Rejection{Reason: ReasonTooShort}
	ErrOverlap          = &Rejection{Reason: ReasonOverlap}
	ErrGuestNotVerified = &Rejection{Reason: ReasonGuestNotVerified}

	ErrConflict          = &Rejection{Reason: ReasonConflict}
	ErrInvalidTransition = &Rejection{Reason: ReasonInvalidTransition}
	ErrPostCheckIn       = &Rejection{Reason: ReasonPostCheckIn}

	ErrBadNoticeWindow = &Rejection{Reason: ReasonBadNoticeWindow}
	ErrBadStayMinimum  = &Rejection{Reason: ReasonBadStayMinimum}
	ErrBadBuffer       = &Rejection{Reason: ReasonBadBuffer}
	ErrBadCheckTimes   = &Rejection{Reason: ReasonBadCheckTimes}
	ErrAllDaysBlocked  = &Rejection{Reason: ReasonAllDaysBlocked}
	ErrBadPolicyEnum   = &Rejection{Reason: ReasonBadPolicyEnum}
)

// Programming errors. They are never *Rejection, so callers can tell
// "this date doesn't work" from "something is broken".
var (
	// ErrMalformedPolicy a policy that fails Validate reached the engine
	ErrMalformedPolicy = errors.New("engine: malformed policy")

	// ErrMalformedRequest a request or amount the engine cannot reason about
	ErrMalformedRequest = errors.New("engine: malformed request")
)

// IsRejection reports whether err carries a domain rejection
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// ReasonOf returns the reason of the first rejection in err's chain
func ReasonOf(err error) (Reason, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason, true
	}
	return "", false
}

// ValidationReasons lists every rejection reason carried by a (possibly joined) error,
// in order and without duplicates
func ValidationReasons(err error) []Reason {
	var (
		reasons []Reason
		seen    = make(map[Reason]bool)
		walk    func(error)
	)
	walk = func(e error) {
		if e == nil {
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		if r, ok := ReasonOf(e); ok && !seen[r] {
			seen[r] = true
			reasons = append(reasons, r)
		}
	}
	walk(err)
	return reasons
}
