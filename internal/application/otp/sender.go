package otp

import (
	"context"
	"fmt"

	"github.com/bankbot-fulfillment/internal/config"
	"github.com/bankbot-fulfillment/internal/infrastructure/smtp"
	"github.com/bankbot-fulfillment/internal/infrastructure/sns"
)

const (
	emailSubject = "Your BankingBot OTP"
	codeBody     = "Your OTP is %s. It expires in 5 minutes."
)

type emailSender struct {
	mailer smtp.Mailer
}

func (e emailSender) SendCode(ctx context.Context, recipient, code string) error {
	return e.mailer.SendEmail(recipient, emailSubject, fmt.Sprintf(codeBody, code))
}

type smsSender struct {
	sender sns.SMSSender
}

func (s smsSender) SendCode(ctx context.Context, recipient, code string) error {
	return s.sender.SendSMS(ctx, recipient, fmt.Sprintf(codeBody, code))
}

// NewSender picks the delivery channel configured for the deployment.
// Email is the default; SMS requires an SNS sender and a receiver phone.
func NewSender(cfg config.OTPConfig, mailer smtp.Mailer, sms sns.SMSSender) (CodeSender, error) {
	switch cfg.Channel {
	case "", "email":
		return emailSender{mailer: mailer}, nil
	case "sms":
		if sms == nil {
			return nil, fmt.Errorf("sms channel configured but SNS sender unavailable")
		}
		if cfg.ReceiverPhone == "" {
			return nil, fmt.Errorf("sms channel configured but OTP_RECEIVER_PHONE empty")
		}
		return smsSender{sender: sms}, nil
	default:
		return nil, fmt.Errorf("unknown OTP channel %q", cfg.Channel)
	}
}
