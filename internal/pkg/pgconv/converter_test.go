//go:build unit

package pgconv_test

import (
	"testing"
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivilRoundTrip(t *testing.T) {
	d := civil.NewDate(2025, time.December, 31)
	assert.Equal(t, d, pgconv.DateFromPgtype(pgconv.DateToPgtype(d)))

	tod := civil.MustTimeOfDay(23, 45)
	pt := pgconv.TimeOfDayToPgtype(tod)
	assert.Equal(t, int64(85500)*1_000_000, pt.Microseconds)
	assert.Equal(t, tod, pgconv.TimeOfDayFromPgtype(pt))

	assert.Nil(t, pgconv.TimeOfDayPtrFromPgtype(pgtype.Time{}))
	assert.False(t, pgconv.TimeOfDayPtrToPgtype(nil).Valid)
	got := pgconv.TimeOfDayPtrFromPgtype(pt)
	require.NotNil(t, got)
	assert.Equal(t, tod, *got)
}

func TestNaiveToPgtype(t *testing.T) {
	muscat := time.FixedZone("GST", 4*60*60)
	ts := pgconv.NaiveToPgtype(time.Date(2025, time.August, 4, 9, 0, 0, 0, muscat))
	assert.Equal(t, time.Date(2025, time.August, 4, 9, 0, 0, 0, time.UTC), ts.Time)
}

func TestStringToNullablePgtype(t *testing.T) {
	assert.False(t, pgconv.StringToNullablePgtype("").Valid)
	assert.Equal(t, "smtp down", pgconv.StringFromPgtype(pgconv.StringToNullablePgtype("smtp down")))
}
