package entity

import "time"

type QuizSettings struct {
	CollectEmail bool `json:"collectEmail"`
	CollectPhone bool `json:"collectPhone"`
	ShowResults  bool `json:"showResults"`
}

type Quiz struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Questions   []Question   `json:"questions"`
	Settings    QuizSettings `json:"settings"`
	Status      PageStatus   `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func DefaultQuizSettings() QuizSettings {
	return QuizSettings{CollectEmail: true, CollectPhone: false, ShowResults: true}
}

// QuizResponse is an append-only log entry of one scored quiz submission.
type QuizResponse struct {
	ID        string            `json:"id"`
	QuizID    string            `json:"quiz_id"`
	Answers   map[string]string `json:"answers"`
	Result    AssessmentResult  `json:"result"`
	CreatedAt time.Time         `json:"created_at"`
}
