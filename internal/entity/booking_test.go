package entity

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testPage() *BookingPage {
	return &BookingPage{
		Duration:     30,
		Availability: Availability{Days: []string{"monday", "Wednesday"}, StartTime: "09:00", EndTime: "11:00"},
		Settings:     BookingSettings{BufferTime: 15},
	}
}

func TestBookingPageSlots(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slots := testPage().Slots(monday, nil)
	assert.Equal(t, []string{"09:00", "09:45", "10:30"}, slots)

	slots = testPage().Slots(monday, map[string]bool{"09:45": true})
	assert.Equal(t, []string{"09:00", "10:30"}, slots)
}

func TestBookingPageSlotsClosedDay(t *testing.T) {
	tuesday := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, testPage().Slots(tuesday, nil))

	wednesday := tuesday.AddDate(0, 0, 1)
	assert.NotEmpty(t, testPage().Slots(wednesday, nil))
}

func TestBookingPageSlotsBadConfig(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	p := testPage()
	p.Duration = 0
	assert.Empty(t, p.Slots(monday, nil))

	p = testPage()
	p.Availability.StartTime = "nine"
	assert.Empty(t, p.Slots(monday, nil))
}

func TestBookingSource(t *testing.T) {
	assert.Equal(t, "booking:direct", (&Booking{}).Source())
	assert.Equal(t, "booking:p1", (&Booking{BookingPageID: "p1"}).Source())
}

func TestBookingUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)

	assert.True(t, (&Booking{Status: BookingScheduled, ScheduledDate: "2026-03-02"}).Upcoming(now))
	assert.True(t, (&Booking{Status: BookingScheduled, ScheduledDate: "2026-04-01"}).Upcoming(now))
	assert.False(t, (&Booking{Status: BookingScheduled, ScheduledDate: "2026-03-01"}).Upcoming(now))
	assert.False(t, (&Booking{Status: BookingCancelled, ScheduledDate: "2026-04-01"}).Upcoming(now))
	assert.False(t, (&Booking{Status: BookingScheduled, ScheduledDate: "soon"}).Upcoming(now))
}

func TestNewSlug(t *testing.T) {
	slug := NewSlug("  Protection & Alignment Quiz!! ", "quiz")
	assert.Regexp(t, regexp.MustCompile(`^protection-alignment-quiz-[0-9a-f]{6}$`), slug)

	assert.NotEqual(t, NewSlug("intake", "form"), NewSlug("intake", "form"))
	assert.Regexp(t, regexp.MustCompile(`^booking-[0-9a-f]{6}$`), NewSlug("!!!", "booking"))
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}

func TestPatchOf(t *testing.T) {
	p, err := PatchOf(&Booking{ID: "b1", Status: BookingScheduled})
	assert.NoError(t, err)
	assert.Equal(t, "b1", p["id"])
	assert.Equal(t, "scheduled", p["status"])
}
