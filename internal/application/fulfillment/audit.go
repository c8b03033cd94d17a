package fulfillment

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/bankbot-fulfillment/internal/domain"
	"github.com/oklog/ulid/v2"
)

// ReceiptStore is the object store the audit trail writes to.
type ReceiptStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Receipt is the archived record of one fulfilled sensitive action.
type Receipt struct {
	InteractionID string    `json:"interaction_id"`
	Intent        string    `json:"intent"`
	Message       string    `json:"message"`
	At            time.Time `json:"at"`
}

// AuditTrail archives a receipt per fulfilled sensitive intent. Uploads are
// fire-and-forget: a failure is logged and never fails the turn. A nil
// AuditTrail is valid and records nothing.
type AuditTrail struct {
	store ReceiptStore
}

func NewAuditTrail(store ReceiptStore) *AuditTrail {
	return &AuditTrail{store: store}
}

// Record writes the receipt under receipts/<ulid>.json. ULIDs sort by
// creation time, so listing the prefix yields a chronological transcript.
func (a *AuditTrail) Record(ctx context.Context, intent domain.Intent, message string) {
	if a == nil || a.store == nil {
		return
	}
	rec := Receipt{
		InteractionID: ulid.MustNew(ulid.Now(), rand.Reader).String(),
		Intent:        intent.String(),
		Message:       message,
		At:            time.Now().UTC(),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		slog.Warn("marshal receipt", "err", err)
		return
	}
	key := "receipts/" + rec.InteractionID + ".json"
	if _, err := a.store.Upload(ctx, key, bytes.NewReader(b), "application/json"); err != nil {
		slog.Warn("archive receipt", "key", key, "err", err)
	}
}
