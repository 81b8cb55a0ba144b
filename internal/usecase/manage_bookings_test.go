package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/financekeem/internal/entity"
)

func TestManageBookingsListOrderAndUpdate(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)
	uc := NewManageBookingsUseCase(repos.Bookings)

	for _, slot := range [][2]string{{"2024-03-12", "09:00"}, {"2024-03-11", "15:00"}, {"2024-03-11", "09:30"}} {
		_, err := repos.Bookings.Create(ctx, &entity.Booking{
			ClientEmail: "a@example.com", ScheduledDate: slot[0], ScheduledTime: slot[1], Status: entity.BookingScheduled,
		})
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-11 09:30", all[0].ScheduledDate+" "+all[0].ScheduledTime)
	assert.Equal(t, "2024-03-11 15:00", all[1].ScheduledDate+" "+all[1].ScheduledTime)
	assert.Equal(t, "2024-03-12", all[2].ScheduledDate)

	day, err := uc.List(ctx, "2024-03-11")
	require.NoError(t, err)
	assert.Len(t, day, 2)

	_, err = uc.List(ctx, "tomorrow")
	assert.True(t, IsDomainError(err))

	done := entity.BookingCompleted
	updated, err := uc.Update(ctx, all[0].ID, UpdateBookingInput{Status: &done, Notes: ptr("went well")})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCompleted, updated.Status)
	assert.Equal(t, "went well", updated.Notes)

	bad := entity.BookingStatus("no-show")
	_, err = uc.Update(ctx, all[0].ID, UpdateBookingInput{Status: &bad})
	assert.True(t, IsDomainError(err))

	require.NoError(t, uc.Delete(ctx, all[1].ID))
	assert.ErrorIs(t, uc.Delete(ctx, all[1].ID), entity.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)

	lastMonth := testNow.AddDate(0, -1, 0)
	leads := []*entity.Lead{
		{Email: "a@example.com", Status: entity.LeadNew, ProtectionState: string(entity.StateNotProtected), CreatedAt: testNow},
		{Email: "b@example.com", Status: entity.LeadScheduled, CreatedAt: testNow.Add(-time.Hour)},
		{Email: "c@example.com", Status: entity.LeadNew, ProtectionState: string(entity.StateNotProtected), CreatedAt: lastMonth},
	}
	for _, l := range leads {
		_, err := repos.Leads.Create(ctx, l)
		require.NoError(t, err)
	}

	_, err := repos.QuizResponses.Create(ctx, &entity.QuizResponse{QuizID: "q1"})
	require.NoError(t, err)

	for _, b := range []*entity.Booking{
		{ClientEmail: "a@example.com", ScheduledDate: "2024-03-04", ScheduledTime: "09:00", Status: entity.BookingScheduled},
		{ClientEmail: "a@example.com", ScheduledDate: "2024-03-20", ScheduledTime: "09:00", Status: entity.BookingScheduled},
		{ClientEmail: "a@example.com", ScheduledDate: "2024-03-21", ScheduledTime: "09:00", Status: entity.BookingCancelled},
		{ClientEmail: "a@example.com", ScheduledDate: "2024-02-01", ScheduledTime: "09:00", Status: entity.BookingScheduled},
	} {
		_, err := repos.Bookings.Create(ctx, b)
		require.NoError(t, err)
	}

	uc := NewDashboardUseCase(repos.Leads, repos.QuizResponses, repos.Bookings)
	uc.Now = fixedClock

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 1, stats.QuizResponses)
	assert.Equal(t, 2, stats.UpcomingBookings)
	assert.Equal(t, 2, stats.LeadsThisMonth)
	assert.Equal(t, map[string]int{"new": 2, "scheduled": 1}, stats.ByStatus)
	assert.Equal(t, map[string]int{string(entity.StateNotProtected): 2}, stats.ByProtection)
	require.Len(t, stats.RecentLeads, 3)
	assert.Equal(t, "a@example.com", stats.RecentLeads[0].Email)
}

func TestClearData(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestStore(t)
	cache := newMemCache()
	require.NoError(t, cache.Set(ctx, "form:slug:x", "v"))

	_, err := repos.Leads.Create(ctx, &entity.Lead{Email: "a@example.com"})
	require.NoError(t, err)

	require.NoError(t, NewClearDataUseCase(s, cache).Execute(ctx))

	all, err := repos.Leads.Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.False(t, cache.has("form:slug:x"))
}

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Equal(t, 2, k.size())

	acquired := make(chan struct{})
	go func() {
		unlock := k.Lock("a")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder got the lock while it was held")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	<-acquired
	unlockB()

	assert.Eventually(t, func() bool { return k.size() == 0 }, time.Second, 5*time.Millisecond)
}
