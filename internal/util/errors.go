package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTryoutNotFound    = errors.New("tryout not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrPackNotFound      = errors.New("practice pack not found")
	ErrMaterialNotFound  = errors.New("material not found")
	ErrAttemptNotFound   = errors.New("tryout attempt not found")
	ErrAttemptNotOwned   = errors.New("tryout attempt belongs to another user")
	ErrAttemptNotOngoing = errors.New("cannot save answers on a tryout that is not ongoing")

	ErrDuplicateOptionCode = errors.New("answer option codes must be unique per question")
	ErrNoCorrectOption     = errors.New("question must have exactly one correct answer option")
)
