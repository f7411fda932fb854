package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// FeedbackItemDTO is the per-question breakdown returned with a scored attempt.
type FeedbackItemDTO struct {
	QuestionID       uint    `json:"question_id"`
	QuestionText     string  `json:"question_text"`
	QuestionImage    *string `json:"question_image,omitempty"`
	SelectedOption   *string `json:"selected_option,omitempty"`
	CorrectOption    string  `json:"correct_option"`
	IsCorrect        bool    `json:"is_correct"`
	ExplanationText  *string `json:"explanation_text,omitempty"`
	ExplanationImage *string `json:"explanation_image,omitempty"`
}

type AnswerRecordDTO struct {
	QuestionID     uint   `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// AttemptDTO mirrors the persisted attempt row.
type AttemptDTO struct {
	ID             uint              `json:"id"`
	UserID         uint              `json:"user_id"`
	ExamID         uint              `json:"exam_id"`
	Answers        []AnswerRecordDTO `json:"answers"`
	Score          float64           `json:"score"`
	CorrectAnswers int               `json:"correct_answers"`
	TotalQuestions int               `json:"total_questions"`
	TimeTaken      int               `json:"time_taken"`
	CreatedAt      time.Time         `json:"created_at"`
}

// AttemptDetailDTO is the submission response: the persisted attempt plus the
// per-question feedback.
type AttemptDetailDTO struct {
	Attempt  AttemptDTO        `json:"attempt"`
	Feedback []FeedbackItemDTO `json:"feedback"`
}

// AttemptSummaryDTO lists a user's past attempts with exam annotations.
type AttemptSummaryDTO struct {
	ID             uint      `json:"id"`
	ExamID         uint      `json:"exam_id"`
	ExamTitle      string    `json:"exam_title"`
	ExamDuration   int       `json:"exam_duration"`
	ExamTotalMarks float64   `json:"exam_total_marks"`
	Score          float64   `json:"score"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	TimeTaken      int       `json:"time_taken"`
	CreatedAt      time.Time `json:"created_at"`
}

// LeaderboardEntryDTO is one ranked row of an exam leaderboard.
type LeaderboardEntryDTO struct {
	Rank        int       `json:"rank"`
	UserID      uint      `json:"user_id"`
	Score       float64   `json:"score"`
	Percentage  float64   `json:"percentage"`
	TimeTaken   int       `json:"time_taken"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubjectAnalyticsDTO is the per-subject rollup for one user.
type SubjectAnalyticsDTO struct {
	SubjectID      *uint   `json:"subject_id"`
	TotalExams     int     `json:"total_exams"`
	AvgPercentage  float64 `json:"avg_percentage"`
	BestPercentage float64 `json:"best_percentage"`
}

// ExamAnalyticsDTO is the per-exam rollup across all users.
type ExamAnalyticsDTO struct {
	ExamID            uint    `json:"exam_id"`
	TotalAttempts     int     `json:"total_attempts"`
	AvgPercentage     float64 `json:"avg_percentage"`
	HighestPercentage float64 `json:"highest_percentage"`
}

// PaymentInitiatedDTO carries the gateway redirect back to the client.
type PaymentInitiatedDTO struct {
	RedirectURL   string `json:"redirect_url"`
	TransactionID string `json:"transaction_id"`
}

type PaymentDTO struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	TransactionID    string    `json:"transaction_id"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentGateway   string    `json:"payment_gateway"`
	SubscriptionType string    `json:"subscription_type"`
	CreatedAt        time.Time `json:"created_at"`
}

type SubscriptionDTO struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	PlanType   string    `json:"plan_type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Status     string    `json:"status"`
	AmountPaid float64   `json:"amount_paid"`
}

// SubscriptionAnalyticsDTO is the admin rollup of the subscription ledger.
type SubscriptionAnalyticsDTO struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Expired int64 `json:"expired"`
}

// ExpirySweepDTO reports how many subscriptions a sweep transitioned.
type ExpirySweepDTO struct {
	Expired int64 `json:"expired"`
}
