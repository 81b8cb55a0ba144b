package entity

import (
	"fmt"
	"strings"
	"time"
)

type Availability struct {
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

type BookingSettings struct {
	BufferTime          int    `json:"bufferTime"`
	CollectPhone        bool   `json:"collectPhone"`
	ConfirmationMessage string `json:"confirmationMessage"`
}

type BookingPage struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Duration     int             `json:"duration"` // minutes
	Availability Availability    `json:"availability"`
	Settings     BookingSettings `json:"settings"`
	Status       PageStatus      `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func DefaultAvailability() Availability {
	return Availability{
		Days:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		StartTime: "09:00",
		EndTime:   "17:00",
	}
}

func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		BufferTime:          15,
		CollectPhone:        true,
		ConfirmationMessage: "Your booking has been confirmed!",
	}
}

const SlotLayout = "15:04"

// Slots lists the HH:MM start times offered on date, skipping the ones in taken.
func (p *BookingPage) Slots(date time.Time, taken map[string]bool) []string {
	if p.Duration <= 0 || !p.opensOn(date.Weekday()) {
		return nil
	}

	start, err := time.Parse(SlotLayout, p.Availability.StartTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(SlotLayout, p.Availability.EndTime)
	if err != nil {
		return nil
	}

	length := time.Duration(p.Duration) * time.Minute
	step := length + time.Duration(max(p.Settings.BufferTime, 0))*time.Minute

	slots := []string{}
	for t := start; !t.Add(length).After(end); t = t.Add(step) {
		label := t.Format(SlotLayout)
		if !taken[label] {
			slots = append(slots, label)
		}
	}
	return slots
}

func (p *BookingPage) opensOn(day time.Weekday) bool {
	name := strings.ToLower(day.String())
	for _, d := range p.Availability.Days {
		if strings.ToLower(strings.TrimSpace(d)) == name {
			return true
		}
	}
	return false
}

type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingScheduled || s == BookingCompleted || s == BookingCancelled
}

const DateLayout = "2006-01-02"

type Booking struct {
	ID            string        `json:"id"`
	ClientName    string        `json:"client_name"`
	ClientEmail   string        `json:"client_email"`
	ClientPhone   string        `json:"client_phone"`
	ScheduledDate string        `json:"scheduled_date"`
	ScheduledTime string        `json:"scheduled_time"`
	BookingPageID string        `json:"booking_page_id"`
	BookingType   string        `json:"booking_type"`
	Status        BookingStatus `json:"status"`
	Notes         string        `json:"notes"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Source is the attribution tag a booking leaves on its lead.
func (b *Booking) Source() string {
	if b.BookingPageID == "" {
		return "booking:direct"
	}
	return fmt.Sprintf("booking:%s", b.BookingPageID)
}

// Upcoming reports whether a scheduled booking falls on today or later.
func (b *Booking) Upcoming(now time.Time) bool {
	if b.Status != BookingScheduled {
		return false
	}
	day, err := time.Parse(DateLayout, b.ScheduledDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(today)
}
