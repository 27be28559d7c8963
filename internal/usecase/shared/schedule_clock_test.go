//go:build unit

package shared_test

import (
	"testing"
	"time"

	"appointment-scheduler/internal/pkg/clock"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleClock(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Booking.TimeZone = "Asia/Muscat"
	mock := clock.NewMockClock(time.Date(2025, time.August, 3, 22, 30, 0, 0, time.UTC))

	sc, err := shared.NewScheduleClock(mock, cfg)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.August, 4, 2, 30, 0, 0, time.UTC), sc.Wall())
	assert.Equal(t, "2025-08-04", sc.Today().String())
	assert.Equal(t, time.Date(2025, time.August, 3, 22, 30, 0, 0, time.UTC), sc.Now())

	cfg.Booking.TimeZone = "Not/AZone"
	_, err = shared.NewScheduleClock(mock, cfg)
	assert.Error(t, err)
}
