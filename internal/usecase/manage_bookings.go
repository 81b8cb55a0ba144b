package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/xavierca1/financekeem/internal/entity"
)

type ManageBookingsUseCase struct {
	Repo entity.BookingRepositoryInterface
}

func NewManageBookingsUseCase(repo entity.BookingRepositoryInterface) *ManageBookingsUseCase {
	return &ManageBookingsUseCase{Repo: repo}
}

// List returns bookings in calendar order, optionally for one date.
func (uc *ManageBookingsUseCase) List(ctx context.Context, date string) ([]*entity.Booking, error) {
	var filters []entity.Filter
	if date = strings.TrimSpace(date); date != "" {
		if !isValidDate(date) {
			return nil, validationFailed([]ValidationError{{"date", "must be a valid date (YYYY-MM-DD)"}})
		}
		filters = append(filters, entity.Where("scheduled_date", date))
	}

	bookings, err := uc.Repo.Find(ctx, filters...)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(bookings, func(a, b *entity.Booking) int {
		if c := strings.Compare(a.ScheduledDate, b.ScheduledDate); c != 0 {
			return c
		}
		return strings.Compare(a.ScheduledTime, b.ScheduledTime)
	})
	return bookings, nil
}

func (uc *ManageBookingsUseCase) Get(ctx context.Context, id string) (*entity.Booking, error) {
	return uc.Repo.Get(ctx, id)
}

func (uc *ManageBookingsUseCase) Update(ctx context.Context, id string, input UpdateBookingInput) (*entity.Booking, error) {
	if errs := ValidateUpdateBookingInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	patch := entity.Patch{}
	if input.Status != nil {
		patch["status"] = string(*input.Status)
	}
	if input.Notes != nil {
		patch["notes"] = *input.Notes
	}
	if input.ScheduledDate != nil {
		patch["scheduled_date"] = *input.ScheduledDate
	}
	if input.ScheduledTime != nil {
		patch["scheduled_time"] = *input.ScheduledTime
	}

	return uc.Repo.Update(ctx, id, patch)
}

func (uc *ManageBookingsUseCase) Delete(ctx context.Context, id string) error {
	return uc.Repo.Delete(ctx, id)
}
