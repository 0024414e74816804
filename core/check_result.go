package core

// CheckResult is the outcome of a validation rule.
//
// Rule violations are ordinary data, not errors: they are returned as a
// structured result and surfaced verbatim to the caller.
//
// CheckResult should only be constructed with Allowed() or Rejected(reason).
type CheckResult struct {
	OK     bool
	Reason string
}

// Allowed creates a CheckResult for a passing validation.
func Allowed() CheckResult {
	return CheckResult{OK: true}
}

// Rejected creates a CheckResult carrying the human-readable rule violation.
func Rejected(reason string) CheckResult {
	return CheckResult{OK: false, Reason: reason}
}
