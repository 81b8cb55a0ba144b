package mail

import "gopkg.in/gomail.v2"

type BookingConfirmationData struct {
	Name    string
	Date    string
	Time    string
	Message string
}

type NewLeadData struct {
	Name   string
	Email  string
	Phone  string
	Source string
	Status string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	send func(m *gomail.Message) error
}
