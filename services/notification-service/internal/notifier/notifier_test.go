package notifier

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotify(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	require.NoError(t, NewLog(&logger).Notify(context.Background(), "Booking Confirmed", "Booking b1 has been confirmed."))
	assert.Contains(t, buf.String(), `"subject":"Booking Confirmed"`)
	assert.Contains(t, buf.String(), `"message":"Booking b1 has been confirmed."`)
}

func TestHumanDateRange(t *testing.T) {
	assert.Equal(t, "2024-03-01 to 2024-03-04", HumanDateRange("2024-03-01T00:00:00Z", "2024-03-04T00:00:00Z"))
	assert.Equal(t, "2024-03-01", HumanDateRange("2024-03-01T00:00:00Z", "2024-03-01T00:00:00Z"))
	assert.Equal(t, "soon to later", HumanDateRange("soon", "later"))
}
