package domain

import "time"

// Passcode is a one-time code issued to a recipient.
// PK: recipient. At most one live record per recipient; a new issuance
// overwrites the prior one. ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type Passcode struct {
	Recipient string `json:"recipient" dynamodbav:"recipient"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the code is stale at the given instant.
// A stale record is treated as absent by readers; it is only cleaned up by
// the table TTL or by the next issuance overwriting it.
func (p *Passcode) Expired(at time.Time) bool {
	return at.Unix() > p.ExpiresAt
}
