package entity

import (
	"strings"
	"time"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadScheduled LeadStatus = "scheduled"
	LeadCompleted LeadStatus = "completed"
	LeadCancelled LeadStatus = "cancelled"
)

// Progression order; cancelled sits outside it.
var leadStatusRank = map[LeadStatus]int{
	LeadNew:       0,
	LeadContacted: 1,
	LeadScheduled: 2,
	LeadCompleted: 3,
}

func (s LeadStatus) Valid() bool {
	_, ok := leadStatusRank[s]
	return ok || s == LeadCancelled
}

func (s LeadStatus) orNew() LeadStatus {
	if !s.Valid() {
		return LeadNew
	}
	return s
}

// AdvanceStatus merges a status coming from a capture event into the current one.
// Progress only moves forward; cancelled always wins and is never left.
func AdvanceStatus(current, incoming LeadStatus) LeadStatus {
	current, incoming = current.orNew(), incoming.orNew()

	if incoming == LeadCancelled || current == LeadCancelled {
		return LeadCancelled
	}
	if leadStatusRank[incoming] > leadStatusRank[current] {
		return incoming
	}
	return current
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Lead struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Status          LeadStatus        `json:"status"`
	Source          string            `json:"source"`
	Notes           string            `json:"notes"`
	QuizAnswers     map[string]string `json:"quiz_answers,omitempty"`
	PillarScores    map[string]int    `json:"pillar_scores,omitempty"`
	ProtectionState string            `json:"protection_state"`
	FormData        map[string]any    `json:"form_data,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// LeadCandidate is the contact data carried by one capture event (quiz, form, booking, admin).
type LeadCandidate struct {
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Status          LeadStatus        `json:"status"`
	Source          string            `json:"source"`
	Notes           string            `json:"notes"`
	QuizAnswers     map[string]string `json:"quiz_answers"`
	PillarScores    map[string]int    `json:"pillar_scores"`
	ProtectionState string            `json:"protection_state"`
	FormData        map[string]any    `json:"form_data"`
}

// NewLead creates the first record for a contact.
func NewLead(c LeadCandidate, now time.Time) *Lead {
	status := c.Status
	if status == "" {
		status = LeadNew
	}

	return &Lead{
		ID:              NewID(),
		Name:            strings.TrimSpace(c.Name),
		Email:           NormalizeEmail(c.Email),
		Phone:           strings.TrimSpace(c.Phone),
		Status:          status,
		Source:          c.Source,
		Notes:           c.Notes,
		QuizAnswers:     c.QuizAnswers,
		PillarScores:    c.PillarScores,
		ProtectionState: c.ProtectionState,
		FormData:        c.FormData,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Merge folds a later capture into an existing lead. Non-empty candidate values win,
// Source keeps its first-touch value and Status only advances.
func (l *Lead) Merge(c LeadCandidate, now time.Time) {
	if name := strings.TrimSpace(c.Name); name != "" {
		l.Name = name
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		l.Phone = phone
	}
	if c.Notes != "" {
		l.Notes = c.Notes
	}
	if len(c.QuizAnswers) > 0 {
		l.QuizAnswers = c.QuizAnswers
	}
	if len(c.PillarScores) > 0 {
		l.PillarScores = c.PillarScores
	}
	if c.ProtectionState != "" {
		l.ProtectionState = c.ProtectionState
	}
	if len(c.FormData) > 0 {
		l.FormData = c.FormData
	}

	l.Status = AdvanceStatus(l.Status, c.Status)
	l.UpdatedAt = now
}
