package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/financekeem/internal/entity"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if !isValidEmail(input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	return errors
}

func ValidateCreateBookingInput(input CreateBookingInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ClientName) == "" {
		errors = append(errors, ValidationError{"client_name", "is required"})
	}

	if strings.TrimSpace(input.ClientEmail) == "" {
		errors = append(errors, ValidationError{"client_email", "is required"})
	} else if !isValidEmail(input.ClientEmail) {
		errors = append(errors, ValidationError{"client_email", "is invalid"})
	}

	if strings.TrimSpace(input.ScheduledDate) == "" {
		errors = append(errors, ValidationError{"scheduled_date", "is required"})
	} else if !isValidDate(input.ScheduledDate) {
		errors = append(errors, ValidationError{"scheduled_date", "must be a valid date (YYYY-MM-DD)"})
	}

	if strings.TrimSpace(input.ScheduledTime) == "" {
		errors = append(errors, ValidationError{"scheduled_time", "is required"})
	} else if !isValidTime(input.ScheduledTime) {
		errors = append(errors, ValidationError{"scheduled_time", "must be a valid time (HH:MM)"})
	}

	return errors
}

func ValidateLeadUpdate(input UpdateLeadInput) []ValidationError {
	var errors []ValidationError

	if input.Status != nil && !input.Status.Valid() {
		errors = append(errors, ValidationError{"status", "must be one of new, contacted, scheduled, completed, cancelled"})
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" && !isValidEmail(*input.Email) {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}
	if input.Name != nil && len(*input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	return errors
}

func validatePage(input PageInput, creating bool) []ValidationError {
	var errors []ValidationError

	if creating && (input.Name == nil || strings.TrimSpace(*input.Name) == "") {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		errors = append(errors, ValidationError{"name", "must not be empty"})
	}
	if input.Status != nil && !input.Status.Valid() {
		errors = append(errors, ValidationError{"status", "must be active or inactive"})
	}

	return errors
}

func ValidateFormInput(input FormInput, creating bool) []ValidationError {
	errors := validatePage(input.PageInput, creating)

	if input.Fields != nil {
		seen := map[string]bool{}
		for i, f := range *input.Fields {
			field := fmt.Sprintf("fields[%d]", i)
			switch {
			case strings.TrimSpace(f.ID) == "":
				errors = append(errors, ValidationError{field, "id is required"})
			case seen[f.ID]:
				errors = append(errors, ValidationError{field, "duplicate id " + f.ID})
			}
			seen[f.ID] = true
			if strings.TrimSpace(f.Label) == "" {
				errors = append(errors, ValidationError{field, "label is required"})
			}
		}
	}

	return errors
}

func ValidateQuizInput(input QuizInput, creating bool) []ValidationError {
	errors := validatePage(input.PageInput, creating)

	if input.Questions != nil {
		for i, q := range *input.Questions {
			field := fmt.Sprintf("questions[%d]", i)
			if strings.TrimSpace(q.ID) == "" {
				errors = append(errors, ValidationError{field, "id is required"})
			}
			if len(q.Options) == 0 {
				errors = append(errors, ValidationError{field, "must have at least one option"})
			}
		}
	}

	return errors
}

func ValidateBookingPageInput(input BookingPageInput, creating bool) []ValidationError {
	errors := validatePage(input.PageInput, creating)

	if input.Duration != nil && (*input.Duration <= 0 || *input.Duration > 8*60) {
		errors = append(errors, ValidationError{"duration", "must be between 1 and 480 minutes"})
	}

	if a := input.Availability; a != nil {
		if !isValidTime(a.StartTime) {
			errors = append(errors, ValidationError{"availability.startTime", "must be a valid time (HH:MM)"})
		}
		if !isValidTime(a.EndTime) {
			errors = append(errors, ValidationError{"availability.endTime", "must be a valid time (HH:MM)"})
		}
		if isValidTime(a.StartTime) && isValidTime(a.EndTime) && a.EndTime <= a.StartTime {
			errors = append(errors, ValidationError{"availability.endTime", "must be after startTime"})
		}
		for _, d := range a.Days {
			if !isWeekday(d) {
				errors = append(errors, ValidationError{"availability.days", "unknown weekday " + d})
			}
		}
	}

	if input.Settings != nil && input.Settings.BufferTime < 0 {
		errors = append(errors, ValidationError{"settings.bufferTime", "must not be negative"})
	}

	return errors
}

func ValidateUpdateBookingInput(input UpdateBookingInput) []ValidationError {
	var errors []ValidationError

	if input.Status != nil && !input.Status.Valid() {
		errors = append(errors, ValidationError{"status", "must be one of scheduled, completed, cancelled"})
	}
	if input.ScheduledDate != nil && !isValidDate(*input.ScheduledDate) {
		errors = append(errors, ValidationError{"scheduled_date", "must be a valid date (YYYY-MM-DD)"})
	}
	if input.ScheduledTime != nil && !isValidTime(*input.ScheduledTime) {
		errors = append(errors, ValidationError{"scheduled_time", "must be a valid time (HH:MM)"})
	}

	return errors
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Address == strings.TrimSpace(email)
}

func isValidDate(s string) bool {
	_, err := time.Parse(entity.DateLayout, s)
	return err == nil
}

func isValidTime(s string) bool {
	_, err := time.Parse(entity.SlotLayout, s)
	return err == nil
}

func isWeekday(day string) bool {
	day = strings.ToLower(strings.TrimSpace(day))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == day {
			return true
		}
	}
	return false
}
