package mail

import (
	"context"
	"fmt"

	"github.com/xavierca1/financekeem/internal/entity"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// Notifier turns capture events into emails. Events it has no template for are ignored.
type Notifier struct {
	Mailer     Mailer
	AdminEmail string
}

func NewNotifier(m Mailer, adminEmail string) *Notifier {
	return &Notifier{Mailer: m, AdminEmail: adminEmail}
}

func (n *Notifier) Notify(ctx context.Context, e entity.Event) error {
	switch e.Type {
	case entity.EventBookingCreated:
		if e.Email == "" {
			return nil
		}
		body, err := render("booking_confirmation.html", BookingConfirmationData{
			Name:    e.Name,
			Date:    e.Date,
			Time:    e.Time,
			Message: e.Message,
		})
		if err != nil {
			return err
		}
		return n.Mailer.Send(e.Email, "Your consultation is booked", body)

	case entity.EventLeadCreated:
		if n.AdminEmail == "" {
			return nil
		}
		body, err := render("new_lead.html", NewLeadData{
			Name:   e.Name,
			Email:  e.Email,
			Phone:  e.Phone,
			Source: e.Source,
			Status: e.Status,
		})
		if err != nil {
			return err
		}
		return n.Mailer.Send(n.AdminEmail, fmt.Sprintf("New lead: %s", displayName(e)), body)
	}
	return nil
}

func displayName(e entity.Event) string {
	if e.Name != "" {
		return e.Name
	}
	if e.Email != "" {
		return e.Email
	}
	return "anonymous"
}
