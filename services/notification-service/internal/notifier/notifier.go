package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/you/agrigo/pkg/obs"
)

// Notifier delivers a human-readable notice. Email, SMS or push can sit behind it.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// Log writes notices to the structured log.
type Log struct {
	logger *zerolog.Logger
}

// NewLog uses logger, or the context logger of each call when nil.
func NewLog(logger *zerolog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, subject, message string) error {
	logger := l.logger
	if logger == nil {
		logger = obs.LoggerFromContext(ctx)
	}
	logger.Info().Str("subject", subject).Msg(message)
	return nil
}

// HumanDateRange renders two RFC3339 timestamps as calendar dates.
func HumanDateRange(start, end string) string {
	st, err1 := time.Parse(time.RFC3339, start)
	et, err2 := time.Parse(time.RFC3339, end)
	if err1 != nil || err2 != nil {
		return fmt.Sprintf("%s to %s", start, end)
	}
	if st.Format("2006-01-02") == et.Format("2006-01-02") {
		return st.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", st.Format("2006-01-02"), et.Format("2006-01-02"))
}
