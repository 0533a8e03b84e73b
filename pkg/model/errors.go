package model

import "fmt"

// InputMalformedError reports that the input JSON does not match the
// documented shape of the problem document.
type InputMalformedError struct {
	Detail string
}

func (err InputMalformedError) Error() string {
	return fmt.Sprintf("input malformed: %v", err.Detail)
}

// ReferenceUnresolvedError reports that some id refers to an entity that
// does not exist.
type ReferenceUnresolvedError struct {
	Entity string // the entity holding the dangling reference, e.g. "event:E1"
	Field  string // the field that carries the reference, e.g. "teacher_id"
	Ref    string // the unresolved id itself
}

func (err ReferenceUnresolvedError) Error() string {
	return fmt.Sprintf("reference unresolved: %v.%v -> %q does not exist", err.Entity, err.Field, err.Ref)
}

// InvariantViolatedError reports that an entity violates one of the
// structural invariants of the problem document (duration mismatch,
// out-of-range week, unknown mode/type, non-positive weeks_total, and
// so on).
type InvariantViolatedError struct {
	Entity string
	Rule   string
}

func (err InvariantViolatedError) Error() string {
	return fmt.Sprintf("invariant violated: %v: %v", err.Entity, err.Rule)
}

// InfeasibleError reports that an event's pre-computed unary domain is
// empty. EventID is always set: a frontier that exhausts without reaching
// a goal state is reported as Outcome{Status: "failure"} directly by
// pkg/search, never wrapped in this type.
type InfeasibleError struct {
	EventID    string
	Diagnostic string
}

func (err InfeasibleError) Error() string {
	return fmt.Sprintf("infeasible: event %q has an empty domain: %v", err.EventID, err.Diagnostic)
}

// TimeoutError reports that a cooperative deadline fired before the search
// completed.
type TimeoutError struct {
	Elapsed string
}

func (err TimeoutError) Error() string {
	return fmt.Sprintf("timeout: search cancelled after %v", err.Elapsed)
}
