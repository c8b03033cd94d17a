package http

import (
	"log"
	"net/http"

	"github.com/bankbot-fulfillment/internal/application/fulfillment"
	"github.com/bankbot-fulfillment/internal/application/otp"
	"github.com/bankbot-fulfillment/internal/config"
	"github.com/bankbot-fulfillment/internal/transport/http/handler"
	appmiddleware "github.com/bankbot-fulfillment/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	sender, err := otp.NewSender(cfg.OTP, deps.Mailer, deps.SMSSender)
	if err != nil {
		log.Printf("WARN: %v — falling back to email delivery", err)
		emailCfg := cfg.OTP
		emailCfg.Channel = "email"
		sender, _ = otp.NewSender(emailCfg, deps.Mailer, nil)
	}

	otpSvc := otp.NewService(deps.PasscodeRepo, sender, cfg.OTP)
	fulfillSvc := fulfillment.NewService(otpSvc, fulfillment.NewAuditTrail(deps.ReceiptStore))

	healthH := handler.NewHealthHandler()
	fulfillH := handler.NewFulfillmentHandler(fulfillSvc)
	receiptH := handler.NewReceiptHandler(deps.ReceiptStore)

	// Each fulfillment turn can issue an email; keep a tight per-IP budget so
	// a misbehaving caller can't turn the bot into a code spammer.
	fulfillRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.With(fulfillRL.Limit).Post("/fulfillment", fulfillH.Handle)
		r.Get("/receipts/{id}", receiptH.Get)
	})

	return r
}
