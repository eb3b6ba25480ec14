package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// JWT
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin    int    `envconfig:"JWT_EXPIRE_MIN" default:"1440"`
	RefreshExpireHr int    `envconfig:"REFRESH_EXPIRE_HR" default:"168"`
	// Chat tree (bolt file)
	ChatDBPath string `envconfig:"CHAT_DB_PATH" default:"chats.db"`
	// Optional collaborators, disabled when empty
	RabbitURL       string `envconfig:"RABBIT_URL"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	RedisAddr       string `envconfig:"REDIS_ADDR"`
	RedisPassword   string `envconfig:"REDIS_PASSWORD"`
	OTLPEndpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// Auth rate limit: attempts per window per client ip
	AuthAttempts   int           `envconfig:"AUTH_RATE_ATTEMPTS" default:"5"`
	AuthRateWindow time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"15m"`
	// Network
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":5000"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"`
}

func (a App) AccessTTL() time.Duration  { return time.Duration(a.JWTExpireMin) * time.Minute }
func (a App) RefreshTTL() time.Duration { return time.Duration(a.RefreshExpireHr) * time.Hour }

func (a App) Origins() []string {
	var out []string
	for _, o := range strings.Split(a.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load reads an optional .env file, then the process environment.
func Load() (App, error) {
	_ = godotenv.Load(".env")
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
