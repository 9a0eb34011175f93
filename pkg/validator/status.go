package validator

// Status is the outcome of a single Rule.Validate call.
type Status int

const (
	// StatusError means the value failed the rule; the rule carries an error message.
	StatusError Status = iota
	// StatusValid means the value satisfies the rule.
	StatusValid
	// StatusCheck means the shared empty/required checks passed and the
	// rule-specific check must run next.
	StatusCheck
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusValid:
		return "valid"
	case StatusCheck:
		return "check"
	default:
		return "unknown"
	}
}
