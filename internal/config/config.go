package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database

	Gateway   Gateway   `envPrefix:"GATEWAY_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
	Email     Email     `envPrefix:"EMAIL_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	Auth      Auth      `envPrefix:"AUTH_"`
}

type Auth struct {
	// empty secret falls back to the X-User-Id header
	JWTSecret string `env:"JWT_SECRET"`
}

type Gateway struct {
	// http | braintree
	Provider      string        `env:"PROVIDER" envDefault:"http"`
	BaseApiURL    string        `env:"BASE_API_URL"`
	APIKey        string        `env:"API_KEY"`
	WebhookSecret string        `env:"WEBHOOK_SECRET"`
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"5s"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Email struct {
	// smtp | postmark | log
	Driver      string `env:"DRIVER" envDefault:"log"`
	FromAddress string `env:"FROM_ADDRESS" envDefault:"billing@localhost"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
}

type Redis struct {
	// empty URL keeps subscription locks in-process
	URL     string        `env:"URL"`
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

type Database struct {
	// mysql | sqlite
	Driver string `env:"DB_DRIVER" envDefault:"mysql"`
	URL    string `env:"DATABASE_URL"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
