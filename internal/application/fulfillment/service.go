package fulfillment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/bankbot-fulfillment/internal/domain"
	"github.com/bankbot-fulfillment/internal/lex"
)

// Gater is the OTP orchestration every sensitive intent runs first. A nil
// response means verified: the handler proceeds to its action.
type Gater interface {
	Gate(ctx context.Context, ev *lex.Event, sess lex.Session) (*lex.Response, error)
}

const msgUnavailable = "Sorry, I can't verify you right now. Please try again in a moment."

type handlerFunc func(ctx context.Context, ev *lex.Event) (*lex.Response, error)

// Service dispatches recognized intents to their handlers. The handler table
// is fixed at construction; unrecognized names surface as
// domain.ErrUnhandledIntent rather than reaching a handler.
type Service struct {
	otp      Gater
	audit    *AuditTrail
	handlers map[domain.Intent]handlerFunc
}

func NewService(otp Gater, audit *AuditTrail) *Service {
	s := &Service{otp: otp, audit: audit}
	s.handlers = map[domain.Intent]handlerFunc{
		domain.IntentCheckBalance: s.checkBalance,
		domain.IntentPayment:      s.payment,
		domain.IntentTransfer:     s.transfer,
		domain.IntentThankYou:     s.thankYou,
	}
	return s
}

// Handle runs one fulfillment turn: one event in, one envelope out.
func (s *Service) Handle(ctx context.Context, ev *lex.Event) (*lex.Response, error) {
	intent, err := domain.ParseIntent(ev.IntentName())
	if err != nil {
		return nil, err
	}
	return s.handlers[intent](ctx, ev)
}

// gate wraps the OTP check with the hardened failure path: when the store or
// notifier is down past retries, the turn closes Failed with an apology
// instead of crashing the invocation.
func (s *Service) gate(ctx context.Context, ev *lex.Event, sess lex.Session) (*lex.Response, bool) {
	resp, err := s.otp.Gate(ctx, ev, sess)
	if err != nil {
		slog.Error("otp gate failed", "intent", ev.IntentName(), "err", err)
		return lex.Close(ev, sess, lex.StateFailed, msgUnavailable), false
	}
	if resp != nil {
		return resp, false
	}
	return nil, true
}

func (s *Service) checkBalance(ctx context.Context, ev *lex.Event) (*lex.Response, error) {
	sess := ev.Session()
	if resp, ok := s.gate(ctx, ev, sess); !ok {
		return resp, nil
	}
	// Placeholder balance; there is no real account backend.
	bal := fmt.Sprintf("%.2f", float64(rand.IntN(49000)+1000)/100)
	msg := fmt.Sprintf("🏦 Your account balance is $%s 💰.", bal)
	s.audit.Record(ctx, domain.IntentCheckBalance, msg)
	return lex.Close(ev, sess, lex.StateFulfilled, msg), nil
}

func (s *Service) payment(ctx context.Context, ev *lex.Event) (*lex.Response, error) {
	sess := ev.Session()
	if resp, ok := s.gate(ctx, ev, sess); !ok {
		return resp, nil
	}
	account := slotOr(ev, "accountType", "your account")
	amount := slotOr(ev, "amount", "an amount")
	msg := fmt.Sprintf("💸 Payment of $%s from %s completed successfully 💰.", amount, account)
	s.audit.Record(ctx, domain.IntentPayment, msg)
	return lex.Close(ev, sess, lex.StateFulfilled, msg), nil
}

func (s *Service) transfer(ctx context.Context, ev *lex.Event) (*lex.Response, error) {
	sess := ev.Session()
	if resp, ok := s.gate(ctx, ev, sess); !ok {
		return resp, nil
	}
	from := slotOr(ev, "fromAccount", "source account")
	to := slotOr(ev, "toAccount", "destination account")
	amount := slotOr(ev, "amount", "an amount")
	msg := fmt.Sprintf("💸 $%s transferred from %s to %s successfully 💰.", amount, from, to)
	s.audit.Record(ctx, domain.IntentTransfer, msg)
	return lex.Close(ev, sess, lex.StateFulfilled, msg), nil
}

// thankYou closes immediately; no OTP gate, no audit — nothing sensitive
// happened.
func (s *Service) thankYou(_ context.Context, ev *lex.Event) (*lex.Response, error) {
	return lex.Close(ev, ev.Session(), lex.StateFulfilled, "You're welcome! 😊"), nil
}

func slotOr(ev *lex.Event, name, fallback string) string {
	if v, ok := ev.Slot(name); ok && v != "" {
		return v
	}
	return fallback
}
