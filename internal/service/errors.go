package service

import "errors"

// Named failures the controllers branch on with errors.Is.
var (
	ErrAlreadyAttempted = errors.New("exam already attempted")
	ErrExamNotFound     = errors.New("exam not found")
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrChapterNotFound  = errors.New("chapter not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrGateway          = errors.New("payment gateway failure")
	ErrInvalidQuestion  = errors.New("invalid question")
)
