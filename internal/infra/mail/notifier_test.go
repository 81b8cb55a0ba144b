package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/financekeem/internal/entity"
)

type sent struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sent
	err  error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sent{to, subject, body})
	return f.err
}

func TestNotifier_BookingConfirmation(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "advisor@example.com")

	err := n.Notify(context.Background(), entity.Event{
		Type:    entity.EventBookingCreated,
		Name:    "Ana <b>",
		Email:   "ana@example.com",
		Date:    "2024-03-06",
		Time:    "09:45",
		Message: "See you soon!",
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)

	assert.Equal(t, "ana@example.com", m.sent[0].to)
	assert.Contains(t, m.sent[0].body, "2024-03-06")
	assert.Contains(t, m.sent[0].body, "09:45")
	assert.Contains(t, m.sent[0].body, "See you soon!")
	assert.Contains(t, m.sent[0].body, "Ana &lt;b&gt;")
}

func TestNotifier_NewLeadGoesToAdmin(t *testing.T) {
	m := &fakeMailer{}
	n := NewNotifier(m, "advisor@example.com")

	err := n.Notify(context.Background(), entity.Event{
		Type:   entity.EventLeadCreated,
		Email:  "bob@example.com",
		Source: "quiz:q1",
		Status: "new",
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "advisor@example.com", m.sent[0].to)
	assert.Equal(t, "New lead: bob@example.com", m.sent[0].subject)
	assert.Contains(t, m.sent[0].body, "quiz:q1")
}

func TestNotifier_Skips(t *testing.T) {
	m := &fakeMailer{}

	require.NoError(t, NewNotifier(m, "").Notify(context.Background(), entity.Event{Type: entity.EventLeadCreated, Email: "x@example.com"}))
	require.NoError(t, NewNotifier(m, "a@example.com").Notify(context.Background(), entity.Event{Type: entity.EventLeadUpdated, Email: "x@example.com"}))
	require.NoError(t, NewNotifier(m, "a@example.com").Notify(context.Background(), entity.Event{Type: entity.EventBookingCreated}))

	assert.Empty(t, m.sent)
}

func TestNotifier_PropagatesSendErrors(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	err := NewNotifier(m, "").Notify(context.Background(), entity.Event{Type: entity.EventBookingCreated, Email: "a@example.com"})
	assert.EqualError(t, err, "smtp down")
}

func TestEmailSender_BuildsMessage(t *testing.T) {
	var got *gomail.Message
	s := NewEmailSender("smtp.example.com", 587, "bot@example.com", "secret", "")
	s.send = func(m *gomail.Message) error {
		got = m
		return nil
	}

	require.NoError(t, s.Send("ana@example.com", "Hello", "<p>hi</p>"))
	require.NotNil(t, got)
	assert.Equal(t, []string{"bot@example.com"}, got.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, got.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, got.GetHeader("Subject"))
}
