package usecase

import "github.com/xavierca1/financekeem/internal/entity"

type CaptureLeadInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Source string `json:"source"`
}

type CreateLeadInput struct {
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Phone  string            `json:"phone"`
	Status entity.LeadStatus `json:"status"`
	Notes  string            `json:"notes"`
}

// UpdateLeadInput is a manual admin edit. Nil fields are left untouched.
type UpdateLeadInput struct {
	Name   *string            `json:"name"`
	Email  *string            `json:"email"`
	Phone  *string            `json:"phone"`
	Status *entity.LeadStatus `json:"status"`
	Notes  *string            `json:"notes"`
}

type LeadQuery struct {
	Search string
	Status entity.LeadStatus
}

type CreateBookingInput struct {
	ClientName    string `json:"client_name"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	BookingPageID string `json:"booking_page_id"`
	BookingType   string `json:"booking_type"`
	Notes         string `json:"notes"`
}

type CreateBookingOutput struct {
	Booking   *entity.Booking `json:"booking"`
	Duplicate bool            `json:"duplicate"`
	Message   string          `json:"message,omitempty"`
}

type UpdateBookingInput struct {
	Status        *entity.BookingStatus `json:"status"`
	Notes         *string               `json:"notes"`
	ScheduledDate *string               `json:"scheduled_date"`
	ScheduledTime *string               `json:"scheduled_time"`
}

// PageInput holds the fields shared by forms, quizzes and booking pages.
type PageInput struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Status      *entity.PageStatus `json:"status"`
}

type FormInput struct {
	PageInput
	Fields   *[]entity.FormField  `json:"fields"`
	Settings *entity.FormSettings `json:"settings"`
}

type QuizInput struct {
	PageInput
	Questions *[]entity.Question   `json:"questions"`
	Settings  *entity.QuizSettings `json:"settings"`
}

type BookingPageInput struct {
	PageInput
	Duration     *int                    `json:"duration"`
	Availability *entity.Availability    `json:"availability"`
	Settings     *entity.BookingSettings `json:"settings"`
}

type SubmitQuizInput struct {
	Name    string            `json:"name"`
	Email   string            `json:"email"`
	Phone   string            `json:"phone"`
	Answers map[string]string `json:"answers"`
}

type SubmitQuizOutput struct {
	ResponseID string                   `json:"response_id"`
	Result     *entity.AssessmentResult `json:"result,omitempty"`
}

type SubmitFormOutput struct {
	SubmissionID string `json:"submission_id"`
	Message      string `json:"message"`
}

type DashboardStats struct {
	TotalLeads       int            `json:"total_leads"`
	QuizResponses    int            `json:"quiz_responses"`
	UpcomingBookings int            `json:"upcoming_bookings"`
	LeadsThisMonth   int            `json:"leads_this_month"`
	ByStatus         map[string]int `json:"by_status"`
	ByProtection     map[string]int `json:"by_protection_state"`
	RecentLeads      []*entity.Lead `json:"recent_leads"`
}
