package dto

// AnswerSubmitDTO is one (question, selected option) pair inside a submission.
type AnswerSubmitDTO struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required"`
}

// AttemptSubmitDTO is the request body for submitting all answers of an exam.
type AttemptSubmitDTO struct {
	UserID    uint              `json:"user_id" binding:"required"` // Temporary, until auth middleware supplies it
	Answers   []AnswerSubmitDTO `json:"answers" binding:"required,min=1,dive"`
	TimeTaken int               `json:"time_taken" binding:"min=0"` // seconds
}

// PaymentInitiateDTO starts a subscription purchase through the gateway.
type PaymentInitiateDTO struct {
	UserID           uint    `json:"user_id" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	SubscriptionType string  `json:"subscription_type" binding:"required,oneof=basic premium pro"`
}

// PaymentCallbackDTO is posted by the gateway on success/fail/cancel.
// SSLCommerz form-posts the fields, so the form tag matters here.
type PaymentCallbackDTO struct {
	TranID string `json:"tran_id" form:"tran_id" binding:"required"`
}
