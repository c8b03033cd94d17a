package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables    DynamoTables
	S3ReceiptBucket string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	OTP OTPConfig

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Passcodes string
}

// OTPConfig parametrizes the passcode engine and its delivery channel.
type OTPConfig struct {
	ReceiverEmail string
	ReceiverPhone string
	Channel       string // "email" | "sms"
	TTLSeconds    int
	MaxAttempts   int
}

// Recipient returns the delivery address for the configured channel.
func (o OTPConfig) Recipient() string {
	if o.Channel == "sms" {
		return o.ReceiverPhone
	}
	return o.ReceiverEmail
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Passcodes: getEnv("DYNAMO_TABLE_OTP", "otp_codes"),
		},
		S3ReceiptBucket: getEnv("S3_BUCKET_RECEIPTS", "bankbot-receipts"),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("OTP_FROM_EMAIL", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SNSRegion: getEnv("SNS_REGION", "us-east-1"),
		OTP: OTPConfig{
			ReceiverEmail: getEnv("OTP_RECEIVER_EMAIL", "receiver@example.com"),
			ReceiverPhone: getEnv("OTP_RECEIVER_PHONE", ""),
			Channel:       getEnv("OTP_CHANNEL", "email"),
			TTLSeconds:    getEnvInt("OTP_TTL_SECONDS", 300),
			MaxAttempts:   getEnvInt("OTP_MAX_ATTEMPTS", 3),
		},
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
