package shared

import (
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/clock"
	"appointment-scheduler/internal/pkg/config"
)

// ScheduleClock reads the clock in the zone provider schedules are written in.
type ScheduleClock struct {
	clock clock.Clock
	loc   *time.Location
}

func NewScheduleClock(clk clock.Clock, cfg config.Config) (*ScheduleClock, error) {
	loc, err := cfg.Booking.Location()
	if err != nil {
		return nil, err
	}
	return &ScheduleClock{clock: clk, loc: loc}, nil
}

// Wall is the current civil date and time as a naive instant, comparable with
// civil.Date.At.
func (c *ScheduleClock) Wall() time.Time {
	return civil.WallClock(c.clock.Now().In(c.loc))
}

// Today is the current civil date.
func (c *ScheduleClock) Today() civil.Date {
	return civil.DateOf(c.Wall())
}

// Now is the current instant, used for audit timestamps.
func (c *ScheduleClock) Now() time.Time {
	return c.clock.Now().UTC()
}
