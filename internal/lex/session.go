package lex

import "strconv"

// AttemptsKey is the one session attribute this service owns: the OTP attempt
// counter, string-encoded because session attributes are string→string on
// the wire.
const AttemptsKey = "otp_attempts"

// Session is the string-keyed state the engine round-trips across turns.
// Counters are typed here and serialized to string only at this boundary.
type Session map[string]string

// Attempts returns the OTP attempt counter, defaulting to 0 when the
// attribute is absent or malformed.
func (s Session) Attempts() int {
	n, err := strconv.Atoi(s[AttemptsKey])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetAttempts stores the OTP attempt counter.
func (s Session) SetAttempts(n int) {
	s[AttemptsKey] = strconv.Itoa(n)
}
