package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

const (
	bookingKind     = "booking"
	DefaultDuration = 30
)

type ManageBookingPagesUseCase struct {
	Repo     entity.BookingPageRepositoryInterface
	Bookings entity.BookingRepositoryInterface
	Cache    SlugCache
	Now      func() time.Time
}

func NewManageBookingPagesUseCase(repo entity.BookingPageRepositoryInterface, bookings entity.BookingRepositoryInterface, cache SlugCache) *ManageBookingPagesUseCase {
	return &ManageBookingPagesUseCase{Repo: repo, Bookings: bookings, Cache: cache, Now: time.Now}
}

func (uc *ManageBookingPagesUseCase) List(ctx context.Context) ([]*entity.BookingPage, error) {
	return uc.Repo.Find(ctx)
}

func (uc *ManageBookingPagesUseCase) Get(ctx context.Context, id string) (*entity.BookingPage, error) {
	return uc.Repo.Get(ctx, id)
}

func (uc *ManageBookingPagesUseCase) Create(ctx context.Context, input BookingPageInput) (*entity.BookingPage, error) {
	if errs := ValidateBookingPageInput(input, true); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	name := strings.TrimSpace(*input.Name)
	now := uc.Now()
	return uc.Repo.Create(ctx, &entity.BookingPage{
		Name:         name,
		Slug:         entity.NewSlug(name, bookingKind),
		Description:  deref(input.Description, ""),
		Duration:     deref(input.Duration, DefaultDuration),
		Availability: deref(input.Availability, entity.DefaultAvailability()),
		Settings:     deref(input.Settings, entity.DefaultBookingSettings()),
		Status:       deref(input.Status, entity.PageActive),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (uc *ManageBookingPagesUseCase) Update(ctx context.Context, id string, input BookingPageInput) (*entity.BookingPage, error) {
	if errs := ValidateBookingPageInput(input, false); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	patch := pagePatch(input.PageInput)
	if input.Duration != nil {
		patch["duration"] = *input.Duration
	}
	if input.Availability != nil {
		patch["availability"] = *input.Availability
	}
	if input.Settings != nil {
		patch["settings"] = *input.Settings
	}

	page, err := uc.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	forgetSlug(ctx, uc.Cache, bookingKind, page.Slug)
	return page, nil
}

func (uc *ManageBookingPagesUseCase) Delete(ctx context.Context, id string) error {
	page, err := uc.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return err
	}
	forgetSlug(ctx, uc.Cache, bookingKind, page.Slug)
	return nil
}

func (uc *ManageBookingPagesUseCase) ResolvePublic(ctx context.Context, slug string) (*entity.BookingPage, error) {
	page, err := resolveBySlug(ctx, uc.Cache, uc.Repo, bookingKind, slug)
	if err != nil {
		return nil, err
	}
	if page.Status != entity.PageActive {
		return nil, fmt.Errorf("booking page %s is inactive: %w", slug, entity.ErrNotFound)
	}
	return page, nil
}

// Slots lists the free start times of a public page on date (YYYY-MM-DD).
// Every non-cancelled booking on that date blocks its time, whatever page it came from.
func (uc *ManageBookingPagesUseCase) Slots(ctx context.Context, slug, date string) ([]string, error) {
	day, err := time.Parse(entity.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return nil, validationFailed([]ValidationError{{"date", "must be a valid date (YYYY-MM-DD)"}})
	}

	page, err := uc.ResolvePublic(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := uc.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return []string{}, nil
	}

	booked, err := uc.Bookings.Find(ctx, entity.Where("scheduled_date", day.Format(entity.DateLayout)))
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		if b.Status != entity.BookingCancelled {
			taken[b.ScheduledTime] = true
		}
	}

	slots := page.Slots(day, taken)
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}
