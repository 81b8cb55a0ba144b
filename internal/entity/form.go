package entity

import "time"

type PageStatus string

const (
	PageActive   PageStatus = "active"
	PageInactive PageStatus = "inactive"
)

func (s PageStatus) Valid() bool {
	return s == PageActive || s == PageInactive
}

type FormField struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type FormSettings struct {
	SubmitButtonText string `json:"submitButtonText"`
	SuccessMessage   string `json:"successMessage"`
}

type Form struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Fields      []FormField  `json:"fields"`
	Settings    FormSettings `json:"settings"`
	Status      PageStatus   `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func DefaultFormFields() []FormField {
	return []FormField{
		{ID: "name", Type: "text", Label: "Full Name", Required: true},
		{ID: "email", Type: "email", Label: "Email", Required: true},
		{ID: "phone", Type: "tel", Label: "Phone", Required: false},
	}
}

func DefaultFormSettings() FormSettings {
	return FormSettings{
		SubmitButtonText: "Submit",
		SuccessMessage:   "Thank you for your submission!",
	}
}

// FormSubmission is an append-only log entry of one form response.
type FormSubmission struct {
	ID        string         `json:"id"`
	FormID    string         `json:"form_id"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}
