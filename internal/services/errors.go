package services

import "errors"

// Sentinel errors returned across the service boundary. Handlers map
// these to HTTP status codes; the texts are part of the wire contract,
// so they keep their user-facing casing and punctuation.
var (
	ErrUserNotFound       = errors.New("User not found.")
	ErrInvalidCredentials = errors.New("Invalid username or password.")
	ErrUsernameTaken      = errors.New("Username already in use")
	ErrQuestionNotFound   = errors.New("Question not found")
	ErrAnswerNotFound     = errors.New("Answer not found")
	ErrTagNotFound        = errors.New("Tag not found")
)
