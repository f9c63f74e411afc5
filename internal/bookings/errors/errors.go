package errors

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid booking step transition")

	ErrSubmissionInProgress = errors.New("appointment submission in progress")

	ErrFormLocked = errors.New("appointment form is not editable")

	ErrFormClosed = errors.New("appointment form was discarded")

	ErrSessionNotFound = errors.New("booking session not found")

	ErrInvalidSessionID = errors.New("invalid booking session ID format")

	ErrNoDoctor = errors.New("no doctor selected")
)
