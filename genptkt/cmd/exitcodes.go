package cmd

// Exit codes for failures that happen before, or instead of, a service call.
// When the security authority is reached, the exit code is the call's own
// return code.
const (
	// ExitUsage reports a wrong argument count, a bad flag or unusable
	// configuration.
	ExitUsage = 8

	// ExitPolicyDenied reports a request refused by the pre-flight policy.
	ExitPolicyDenied = 12

	// ExitUnavailable reports that no security authority could be called.
	ExitUnavailable = 16
)

// exitError carries an exit code through cobra. err may be nil when there is
// nothing to report beyond the code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}
