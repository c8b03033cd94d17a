package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/bankbot-fulfillment/internal/config"
	"github.com/bankbot-fulfillment/internal/domain"
	"github.com/bankbot-fulfillment/internal/lex"
	"github.com/sethvargo/go-retry"
)

// SlotName is the slot every gated intent uses to collect the code.
const SlotName = "otp"

const resendKeyword = "resend"

// Rejection reasons. These are user-recoverable: the gate turns them into a
// re-prompt, never a failed turn.
var (
	ErrCodeNotFound = errors.New("no code found")
	ErrCodeExpired  = errors.New("code expired")
	ErrCodeMismatch = errors.New("incorrect code")
)

// PasscodeStore is the minimal persistence interface the engine requires.
type PasscodeStore interface {
	Put(ctx context.Context, p *domain.Passcode) error
	Get(ctx context.Context, recipient string) (*domain.Passcode, error)
	Delete(ctx context.Context, recipient string) error
}

// CodeSender delivers a freshly issued code out of band. Fire-and-forget:
// the engine never consumes a delivery confirmation.
type CodeSender interface {
	SendCode(ctx context.Context, recipient, code string) error
}

// Service generates, verifies and expires one-time passcodes for the single
// configured recipient, and enforces the bounded-retry policy. It holds no
// cross-turn state of its own: the attempt counter lives in the session
// attributes and the code record in the store.
type Service struct {
	store       PasscodeStore
	sender      CodeSender
	recipient   string
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewService(store PasscodeStore, sender CodeSender, cfg config.OTPConfig) *Service {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &Service{
		store:       store,
		sender:      sender,
		recipient:   cfg.Recipient(),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Generate issues a fresh 6-digit code: persists it (replacing any prior
// record for the recipient) and delivers it through the notifier. Store and
// notifier failures come back wrapped with domain.ErrUnavailable so callers
// can degrade gracefully instead of crashing the invocation.
func (s *Service) Generate(ctx context.Context) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%d", n.Int64()+100000)

	p := &domain.Passcode{
		Recipient: s.recipient,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	}
	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.store.Put(ctx, p)
	}); err != nil {
		return "", fmt.Errorf("store passcode: %w: %w", domain.ErrUnavailable, err)
	}

	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.sender.SendCode(ctx, s.recipient, code)
	}); err != nil {
		return "", fmt.Errorf("deliver passcode: %w: %w", domain.ErrUnavailable, err)
	}

	slog.Info("issued passcode", "recipient", s.recipient, "expires_at", p.ExpiresAt)
	return code, nil
}

// Verify checks a submitted code against the live record.
// On success the record is deleted (single use). An expired record is left
// in place; the next issuance overwrites it and the table TTL reaps it.
func (s *Service) Verify(ctx context.Context, submitted string) error {
	p, err := s.getRecord(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrCodeNotFound
	}
	if p.Expired(s.now()) {
		return ErrCodeExpired
	}
	if submitted != p.Code {
		return ErrCodeMismatch
	}
	if err := s.withRetry(ctx, func(ctx context.Context) error {
		return s.store.Delete(ctx, s.recipient)
	}); err != nil {
		return fmt.Errorf("consume passcode: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// Gate is the orchestration every sensitive intent runs before its action.
// A nil response means the code was accepted and the caller may proceed;
// a non-nil response is the elicit envelope to return verbatim.
func (s *Service) Gate(ctx context.Context, ev *lex.Event, sess lex.Session) (*lex.Response, error) {
	submitted, bound := ev.Slot(SlotName)
	wantsResend := strings.Contains(strings.ToLower(ev.InputTranscript), resendKeyword)

	p, err := s.getRecord(ctx)
	if err != nil {
		return nil, err
	}
	live := p != nil && !p.Expired(s.now())

	// Issuance takes precedence over verification, even when a code is
	// bound in the slot.
	if !bound || wantsResend || !live {
		if _, err := s.Generate(ctx); err != nil {
			return nil, err
		}
		sess.SetAttempts(0)
		msg := fmt.Sprintf("📩 Sending a new OTP to %s. Please check your email ✉️ and enter it here.", s.recipient)
		return lex.Elicit(ev, sess, SlotName, msg), nil
	}

	err = s.Verify(ctx, submitted)
	if err == nil {
		sess.SetAttempts(0)
		return nil, nil
	}
	if !isRejection(err) {
		return nil, err
	}

	attempts := sess.Attempts() + 1
	if attempts >= s.maxAttempts {
		sess.SetAttempts(0)
		if _, err := s.Generate(ctx); err != nil {
			return nil, err
		}
		return lex.Elicit(ev, sess, SlotName,
			fmt.Sprintf("✖️ Incorrect OTP %d times. Sending a new OTP 📩. Try again.", s.maxAttempts)), nil
	}
	sess.SetAttempts(attempts)
	msg := fmt.Sprintf("😕 %s You have %d attempt(s) left. (Type 'resend' to get a new OTP 📩.)",
		rejectionText(err), s.maxAttempts-attempts)
	return lex.Elicit(ev, sess, SlotName, msg), nil
}

// getRecord returns (nil, nil) when no record exists for the recipient.
func (s *Service) getRecord(ctx context.Context) (*domain.Passcode, error) {
	var p *domain.Passcode
	err := s.withRetry(ctx, func(ctx context.Context) error {
		got, err := s.store.Get(ctx, s.recipient)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		p = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read passcode: %w: %w", domain.ErrUnavailable, err)
	}
	return p, nil
}

// withRetry runs op with bounded exponential backoff. Store and notifier
// hiccups are retried a few times before surfacing as recoverable errors.
func (s *Service) withRetry(ctx context.Context, op func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(2, retry.NewExponential(100*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func isRejection(err error) bool {
	return errors.Is(err, ErrCodeNotFound) || errors.Is(err, ErrCodeExpired) || errors.Is(err, ErrCodeMismatch)
}

func rejectionText(err error) string {
	switch {
	case errors.Is(err, ErrCodeNotFound):
		return "No OTP found. Please request a new one."
	case errors.Is(err, ErrCodeExpired):
		return "OTP expired. Please request again."
	default:
		return "Invalid OTP. Please try again."
	}
}
