package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
	"github.com/xavierca1/financekeem/internal/log"
)

type CreateBookingUseCase struct {
	Repo    entity.BookingRepositoryInterface
	Pages   entity.BookingPageRepositoryInterface
	Leads   LeadReconciler
	Events  EventPublisher
	Metrics Recorder
	Now     func() time.Time
}

func NewCreateBookingUseCase(
	repo entity.BookingRepositoryInterface,
	pages entity.BookingPageRepositoryInterface,
	leads LeadReconciler,
	events EventPublisher,
	metrics Recorder,
) *CreateBookingUseCase {
	return &CreateBookingUseCase{
		Repo:    repo,
		Pages:   pages,
		Leads:   leads,
		Events:  events,
		Metrics: orNop(metrics),
		Now:     time.Now,
	}
}

// Execute books a slot. A booking with the same (email, date, time) is returned
// as is, without touching the lead. The booking and the lead reconcile are two
// separate writes: when the reconcile fails the booking is kept and the error returned.
func (uc *CreateBookingUseCase) Execute(ctx context.Context, input CreateBookingInput) (*CreateBookingOutput, error) {
	input.ClientName = strings.TrimSpace(input.ClientName)
	input.ClientEmail = entity.NormalizeEmail(input.ClientEmail)
	input.ClientPhone = strings.TrimSpace(input.ClientPhone)
	input.ScheduledDate = strings.TrimSpace(input.ScheduledDate)
	input.ScheduledTime = strings.TrimSpace(input.ScheduledTime)

	if errs := ValidateCreateBookingInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	var page *entity.BookingPage
	if input.BookingPageID != "" {
		var err error
		page, err = uc.Pages.Get(ctx, input.BookingPageID)
		if errors.Is(err, entity.ErrNotFound) {
			return nil, validationFailed([]ValidationError{{"booking_page_id", "does not exist"}})
		}
		if err != nil {
			return nil, err
		}
	}

	existing, err := uc.findSame(ctx, input)
	switch {
	case err == nil:
		uc.Metrics.BookingCreated(OutcomeDuplicate)
		return uc.output(existing, page, true), nil
	case !errors.Is(err, entity.ErrNotFound):
		uc.Metrics.BookingCreated(OutcomeFailed)
		return nil, err
	}

	now := uc.Now()
	booking, err := uc.Repo.Create(ctx, &entity.Booking{
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		ClientPhone:   input.ClientPhone,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		BookingPageID: input.BookingPageID,
		BookingType:   input.BookingType,
		Status:        entity.BookingScheduled,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, entity.ErrConflict) {
		// a concurrent request stored the same slot first
		if winner, ferr := uc.findSame(ctx, input); ferr == nil {
			uc.Metrics.BookingCreated(OutcomeDuplicate)
			return uc.output(winner, page, true), nil
		}
	}
	if err != nil {
		uc.Metrics.BookingCreated(OutcomeFailed)
		return nil, err
	}

	_, err = uc.Leads.Execute(ctx, entity.LeadCandidate{
		Name:   booking.ClientName,
		Email:  booking.ClientEmail,
		Phone:  booking.ClientPhone,
		Status: entity.LeadScheduled,
		Source: booking.Source(),
	})
	if err != nil {
		uc.Metrics.BookingCreated(OutcomeFailed)
		log.WithError(err).WithField("booking_id", booking.ID).Error("booking stored but lead reconcile failed")
		return nil, err
	}

	uc.Metrics.BookingCreated(OutcomeCreated)
	out := uc.output(booking, page, false)

	publish(ctx, uc.Events, entity.Event{
		Type:       entity.EventBookingCreated,
		BookingID:  booking.ID,
		Name:       booking.ClientName,
		Email:      booking.ClientEmail,
		Phone:      booking.ClientPhone,
		Status:     string(booking.Status),
		Source:     booking.Source(),
		Date:       booking.ScheduledDate,
		Time:       booking.ScheduledTime,
		Message:    out.Message,
		OccurredAt: now,
	})

	return out, nil
}

func (uc *CreateBookingUseCase) findSame(ctx context.Context, input CreateBookingInput) (*entity.Booking, error) {
	return uc.Repo.FindOne(ctx,
		entity.Where("client_email", input.ClientEmail),
		entity.Where("scheduled_date", input.ScheduledDate),
		entity.Where("scheduled_time", input.ScheduledTime),
	)
}

func (uc *CreateBookingUseCase) output(b *entity.Booking, page *entity.BookingPage, duplicate bool) *CreateBookingOutput {
	msg := entity.DefaultBookingSettings().ConfirmationMessage
	if page != nil && page.Settings.ConfirmationMessage != "" {
		msg = page.Settings.ConfirmationMessage
	}
	return &CreateBookingOutput{Booking: b, Duplicate: duplicate, Message: msg}
}
