package tokenauth

// Outcome is the terminal state of an authentication attempt.
type Outcome string

const (
	// OutcomeSuccess: the verify callback accepted the identity.
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure: not authenticated; recoverable by the client supplying
	// valid credentials.
	OutcomeFailure Outcome = "failure"
	// OutcomeError: a transport or system fault, distinct from an
	// invalid-credential decision.
	OutcomeError Outcome = "error"
)

// Info carries auxiliary information alongside an outcome: the failure reason
// on a failure, or extra detail supplied by the verify callback on a success.
type Info map[string]any

// Message returns the human-readable reason, if any.
func (i Info) Message() string {
	msg, _ := i["message"].(string)
	return msg
}

// Result is the outcome of one authentication attempt. The three outcomes
// are mutually exclusive; construct results with Success, Failure or Error.
type Result struct {
	outcome Outcome
	user    any
	info    Info
	err     error
}

// Success constructs a result for a verified user, together with any
// auxiliary info the verify callback supplied.
func Success(user any, info Info) Result {
	return Result{outcome: OutcomeSuccess, user: user, info: info}
}

// Failure constructs a not-authenticated result carrying a structured reason.
func Failure(info Info) Result {
	return Result{outcome: OutcomeFailure, info: info}
}

// Error constructs a result for a transport or system fault, propagating err
// unchanged.
func Error(err error) Result {
	return Result{outcome: OutcomeError, err: err}
}

func (r Result) Outcome() Outcome { return r.outcome }

// User returns the verified application user. Non-nil only on a success.
func (r Result) User() any { return r.user }

// Info returns the auxiliary payload accompanying a success or failure.
func (r Result) Info() Info { return r.info }

// Err returns the propagated fault. Non-nil only on an error outcome.
func (r Result) Err() error { return r.err }
