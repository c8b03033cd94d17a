package http

import (
	"github.com/bankbot-fulfillment/internal/infrastructure/dynamo"
	s3infra "github.com/bankbot-fulfillment/internal/infrastructure/s3"
	"github.com/bankbot-fulfillment/internal/infrastructure/smtp"
	"github.com/bankbot-fulfillment/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PasscodeRepo *dynamo.PasscodeRepo
	ReceiptStore *s3infra.Store
	Mailer       smtp.Mailer
	SMSSender    sns.SMSSender // nil when SNS is unavailable; email-only then
}
