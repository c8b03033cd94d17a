package domain

import "fmt"

// Intent is the closed set of user goals the bot fulfills. The conversational
// engine is configured with exactly these names; anything else is a caller
// bug surfaced as ErrUnhandledIntent.
type Intent string

const (
	IntentCheckBalance Intent = "CheckBalance"
	IntentPayment      Intent = "Payment"
	IntentTransfer     Intent = "Transfer"
	IntentThankYou     Intent = "ThankYou"
)

// ParseIntent maps an intent name from the wire to the enumeration.
func ParseIntent(name string) (Intent, error) {
	switch Intent(name) {
	case IntentCheckBalance, IntentPayment, IntentTransfer, IntentThankYou:
		return Intent(name), nil
	default:
		return "", fmt.Errorf("intent %q: %w", name, ErrUnhandledIntent)
	}
}

func (i Intent) String() string { return string(i) }
