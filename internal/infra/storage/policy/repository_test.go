package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaceBookingService/internal/domain"
)

func TestWeekdaysRoundTrip(t *testing.T) {
	set := domain.NewWeekdaySet(time.Sunday, time.Friday)

	ints := WeekdaysToInts(set)

	assert.Equal(t, []int64{0, 5}, ints)
	assert.Equal(t, set, WeekdaysFromInts(ints))
}

func TestWeekdaysFromInts_SkipsGarbage(t *testing.T) {
	assert.Equal(t, domain.NewWeekdaySet(time.Monday), WeekdaysFromInts([]int64{-1, 1, 9}))
	assert.Equal(t, domain.WeekdaySet(0), WeekdaysFromInts(nil))
}
