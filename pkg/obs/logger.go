package obs

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// LogOptions configures the process logger. Out defaults to stdout and an
// unparsable Level falls back to info.
type LogOptions struct {
	Service string
	Env     string
	Level   string
	Out     io.Writer
}

// InitLogger installs the process-wide logger. Development gets the console
// writer; every other env emits JSON lines with caller info.
func InitLogger(o LogOptions) {
	out := o.Out
	if out == nil {
		out = os.Stdout
	}
	lvl, err := zerolog.ParseLevel(o.Level)
	if err != nil || o.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if o.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	c := zerolog.New(out).Level(lvl).With().Timestamp().
		Str("service", o.Service).
		Str("env", o.Env)
	if o.Env != "development" {
		c = c.Caller()
	}
	log.Logger = c.Logger()
}

type ridKey struct{}

// WithRequestID stores the request id so logs emitted further down carry it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ridKey{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ridKey{}).(string)
	return id
}

// LoggerFromContext returns the process logger tagged with the request id and
// the active span, when present.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	c := log.With()
	if id := RequestID(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		c = c.Str("trace_id", sc.TraceID().String()).
			Str("span_id", sc.SpanID().String())
	}
	logger := c.Logger()
	return &logger
}

func GetLogger() *zerolog.Logger {
	return &log.Logger
}
