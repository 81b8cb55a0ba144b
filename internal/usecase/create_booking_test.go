package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/infra/store"
)

func newBookingUC(t *testing.T) (*CreateBookingUseCase, *store.Repositories) {
	_, repos := newTestStore(t)
	leads := NewReconcileLeadUseCase(repos.Leads, nil, nil)
	uc := NewCreateBookingUseCase(repos.Bookings, repos.BookingPages, leads, nil, nil)
	uc.Now = fixedClock
	return uc, repos
}

func validBooking() CreateBookingInput {
	return CreateBookingInput{
		ClientName:    "Ana",
		ClientEmail:   " Ana@Example.com ",
		ClientPhone:   "555",
		ScheduledDate: "2024-03-11",
		ScheduledTime: "09:00",
	}
}

func TestCreateBookingReconcilesLead(t *testing.T) {
	ctx := context.Background()
	uc, repos := newBookingUC(t)

	out, err := uc.Execute(ctx, validBooking())
	require.NoError(t, err)

	assert.False(t, out.Duplicate)
	assert.Equal(t, entity.BookingScheduled, out.Booking.Status)
	assert.Equal(t, "ana@example.com", out.Booking.ClientEmail)
	assert.Equal(t, "Your booking has been confirmed!", out.Message)

	lead, err := repos.Leads.FindOne(ctx, entity.Where("email", "ana@example.com"))
	require.NoError(t, err)
	assert.Equal(t, entity.LeadScheduled, lead.Status)
	assert.Equal(t, "booking:direct", lead.Source)
	assert.Equal(t, "555", lead.Phone)
}

func TestCreateBookingDuplicateReturnsExisting(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)
	leads := new(MockLeadReconciler)
	leads.On("Execute", ctx, mock.Anything).Return(&entity.Lead{ID: "lead-1"}, nil).Once()

	uc := NewCreateBookingUseCase(repos.Bookings, repos.BookingPages, leads, nil, nil)

	first, err := uc.Execute(ctx, validBooking())
	require.NoError(t, err)

	again := validBooking()
	again.ClientEmail = "ana@example.com"
	again.Notes = "double click"
	second, err := uc.Execute(ctx, again)
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Booking, second.Booking)
	leads.AssertNumberOfCalls(t, "Execute", 1)

	all, err := repos.Bookings.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateBookingOtherTimeIsNotDuplicate(t *testing.T) {
	ctx := context.Background()
	uc, repos := newBookingUC(t)

	_, err := uc.Execute(ctx, validBooking())
	require.NoError(t, err)

	later := validBooking()
	later.ScheduledTime = "10:00"
	out, err := uc.Execute(ctx, later)
	require.NoError(t, err)
	assert.False(t, out.Duplicate)

	all, err := repos.Bookings.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	leadsAll, err := repos.Leads.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, leadsAll, 1)
}

func TestCreateBookingValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	uc, repos := newBookingUC(t)

	cases := map[string]func(*CreateBookingInput){
		"client_name":    func(in *CreateBookingInput) { in.ClientName = " " },
		"client_email":   func(in *CreateBookingInput) { in.ClientEmail = "" },
		"scheduled_date": func(in *CreateBookingInput) { in.ScheduledDate = "11/03/2024" },
		"scheduled_time": func(in *CreateBookingInput) { in.ScheduledTime = "9am" },
	}
	for field, mutate := range cases {
		in := validBooking()
		mutate(&in)

		_, err := uc.Execute(ctx, in)
		var de *DomainError
		require.ErrorAs(t, err, &de, field)
		assert.Equal(t, field, de.Fields[0].Field)
	}

	bookings, err := repos.Bookings.Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	leads, err := repos.Leads.Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)
}

func TestCreateBookingFromPage(t *testing.T) {
	ctx := context.Background()
	uc, repos := newBookingUC(t)

	page, err := repos.BookingPages.Create(ctx, &entity.BookingPage{
		Name:     "Intro call",
		Slug:     "intro-call-abc123",
		Duration: 30,
		Settings: entity.BookingSettings{ConfirmationMessage: "See you soon"},
		Status:   entity.PageActive,
	})
	require.NoError(t, err)

	in := validBooking()
	in.BookingPageID = page.ID
	out, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "See you soon", out.Message)

	lead, err := repos.Leads.FindOne(ctx, entity.Where("email", "ana@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "booking:"+page.ID, lead.Source)

	in.BookingPageID = "missing"
	_, err = uc.Execute(ctx, in)
	assert.True(t, IsDomainError(err))
}

func TestCreateBookingKeepsBookingWhenReconcileFails(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)
	leads := new(MockLeadReconciler)
	metrics := new(MockRecorder)
	events := new(MockEventPublisher)

	leads.On("Execute", ctx, mock.Anything).Return(nil, entity.ErrStorageUnavailable)
	metrics.On("BookingCreated", OutcomeFailed).Return()

	uc := NewCreateBookingUseCase(repos.Bookings, repos.BookingPages, leads, events, metrics)
	_, err := uc.Execute(ctx, validBooking())
	assert.True(t, errors.Is(err, entity.ErrStorageUnavailable))

	bookings, err := repos.Bookings.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1, "no rollback of the booking")
	metrics.AssertExpectations(t)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateBookingPublishesEvent(t *testing.T) {
	ctx := context.Background()
	_, repos := newTestStore(t)
	events := new(MockEventPublisher)
	events.On("Publish", ctx, mock.MatchedBy(func(e entity.Event) bool {
		return e.Type == entity.EventLeadCreated
	})).Return(nil)
	events.On("Publish", ctx, mock.MatchedBy(func(e entity.Event) bool {
		return e.Type == entity.EventBookingCreated && e.Date == "2024-03-11" && e.Time == "09:00" && e.Email == "ana@example.com"
	})).Return(nil).Once()

	leads := NewReconcileLeadUseCase(repos.Leads, events, nil)
	uc := NewCreateBookingUseCase(repos.Bookings, repos.BookingPages, leads, events, nil)

	_, err := uc.Execute(ctx, validBooking())
	require.NoError(t, err)
	events.AssertExpectations(t)
}
