package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		descriptor string
		hour       int
		minute     int
	}{
		// без меридиана: часы < 7 считаются PM
		{"12:15", 12, 15},
		{"1:15", 13, 15},
		{"6:59", 18, 59},
		{"7:00", 7, 0},
		{"11:45 – 12:15", 11, 45},
		{"12:45 – 1:15", 12, 45},
		{"12:15 – 12:45", 12, 15},
		{"11:45 – 1:15", 11, 45},
		// меридиан у начала диапазона
		{"11:45 AM – 2:00 PM", 11, 45},
		{"12:30 pm", 12, 30},
		{"12:10 AM", 0, 10},
		{"9:05 p.m.", 21, 5},
		// меридиан в конце диапазона
		{"8:00 – 11:00 AM", 8, 0},
		{"8:00 – 8:40 AM", 8, 0},
		{"5:00 – 7:30 PM", 17, 0},
		{"8:15 – 9:00 PM", 20, 15},
		{"11:00 – 1:00 PM", 11, 0},
		{"Lunch from 2:30", 14, 30},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			hour, minute, err := ParseStartTime(tt.descriptor)
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestParseStartTime_Malformed(t *testing.T) {
	for _, descriptor := range []string{"", "noon", "12h15", "25:00", "10:75", "13:00 PM"} {
		_, _, err := ParseStartTime(descriptor)
		assert.ErrorIs(t, err, ErrMalformedTimeDescriptor, descriptor)
	}
}

func TestParseStartTime_NoMeridiemAddsTwelveBelowSeven(t *testing.T) {
	for h := 0; h < 7; h++ {
		hour, _, err := ParseStartTime(time.Date(2026, 1, 1, h, 30, 0, 0, time.UTC).Format("15:04"))
		require.NoError(t, err)
		assert.Equal(t, h+12, hour)
	}
}

func TestResolveWindow(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2026, 10, 16, 9, 12, 33, 500, loc)

	w, err := ResolveWindow("11:45 – 12:15", ref)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 16, 11, 45, 0, 0, loc), w.Start)
	assert.Equal(t, w.Start.Add(-4*time.Hour), w.Open)
	assert.Equal(t, w.Start.Add(6*time.Hour), w.Close)

	_, err = ResolveWindow("soon", ref)
	assert.ErrorIs(t, err, ErrMalformedTimeDescriptor)
}

func TestWindow_IsEligible(t *testing.T) {
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	w, err := ResolveWindow("12:15", day)
	require.NoError(t, err)

	tests := []struct {
		name string
		ref  time.Time
		now  time.Time
		want bool
	}{
		{"at open", day, w.Open, true},
		{"at close", day, w.Close, true},
		{"inside", day, w.Start, true},
		{"before open", day, w.Open.Add(-time.Second), false},
		{"after close", day, w.Close.Add(time.Second), false},
		{"other day", day.AddDate(0, 0, 1), w.Start, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.IsEligible(tt.ref, tt.now))
		})
	}
}

func TestIsSameDay_UsesReferenceLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ref := time.Date(2026, 10, 16, 0, 0, 0, 0, ist)

	// 2026-10-15 20:00 UTC = 2026-10-16 01:30 IST
	assert.True(t, IsSameDay(ref, time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)))
	assert.False(t, IsSameDay(ref, time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)))
}

func TestResolveAfternoonWindow(t *testing.T) {
	tests := []struct {
		block string
		floor string
		want  string
	}{
		{"", "", domain.DefaultAfternoonDescriptor},
		{"WB-II", "", domain.DefaultAfternoonDescriptor},
		{"", "3rd Floor", domain.DefaultAfternoonDescriptor},
		{"WB-II", "1st Floor", "11:45 – 12:15"},
		{"WB-II", "3rd Floor", "11:45 – 12:15"},
		{"WB-II", "4th Floor", "11:45 – 12:15"},
		{"WB-II", "5th Floor", "12:45 – 1:15"},
		{"WB-II", "8th Floor", "12:45 – 1:15"},
		{"WB-II", "9th Floor", domain.DefaultAfternoonDescriptor},
		{"WB-II", "Grd Floor", domain.DefaultAfternoonDescriptor},
		{"EB-II", "Grd Floor", "12:15 – 12:45"},
		{"EB-II", "4th Floor", "12:15 – 12:45"},
		{"WB-IV", "7th Floor", "11:45 – 1:15"},
		{"NB-I", "2nd Floor", domain.DefaultAfternoonDescriptor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveAfternoonWindow(tt.block, tt.floor), "%s/%s", tt.block, tt.floor)
	}
}

func TestFloorNumber(t *testing.T) {
	n, ok := FloorNumber("12th Floor")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = FloorNumber("Grd Floor")
	assert.False(t, ok)
}

func TestEffectiveDescriptor(t *testing.T) {
	loc := domain.Location{Block: "WB-II", Floor: "3rd Floor"}

	afternoon, ok := domain.FindSection(domain.SectionAfternoon)
	require.True(t, ok)
	assert.Equal(t, "11:45 – 12:15", EffectiveDescriptor(afternoon, loc))

	night, ok := domain.FindSection(domain.SectionNight)
	require.True(t, ok)
	assert.Equal(t, "8:15 – 9:00 PM", EffectiveDescriptor(night, loc))
}
