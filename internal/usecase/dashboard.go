package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

const recentLeadsLimit = 5

type DashboardUseCase struct {
	Leads     entity.LeadRepositoryInterface
	Responses entity.QuizResponseRepositoryInterface
	Bookings  entity.BookingRepositoryInterface
	Now       func() time.Time
}

func NewDashboardUseCase(leads entity.LeadRepositoryInterface, responses entity.QuizResponseRepositoryInterface, bookings entity.BookingRepositoryInterface) *DashboardUseCase {
	return &DashboardUseCase{Leads: leads, Responses: responses, Bookings: bookings, Now: time.Now}
}

func (uc *DashboardUseCase) Stats(ctx context.Context) (*DashboardStats, error) {
	leads, err := uc.Leads.Find(ctx)
	if err != nil {
		return nil, err
	}
	responses, err := uc.Responses.Find(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := uc.Bookings.Find(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.Now().UTC()
	stats := &DashboardStats{
		TotalLeads:    len(leads),
		QuizResponses: len(responses),
		ByStatus:      map[string]int{},
		ByProtection:  map[string]int{},
		RecentLeads:   leads[:min(recentLeadsLimit, len(leads))],
	}

	for _, l := range leads {
		created := l.CreatedAt.UTC()
		if created.Year() == now.Year() && created.Month() == now.Month() {
			stats.LeadsThisMonth++
		}
		stats.ByStatus[string(l.Status)]++
		if l.ProtectionState != "" {
			stats.ByProtection[l.ProtectionState]++
		}
	}

	for _, b := range bookings {
		if b.Upcoming(now) {
			stats.UpcomingBookings++
		}
	}

	return stats, nil
}
