package domain

import "errors"

var (
	ErrSubjectsNotFound     = errors.New("subject snapshot not found")
	ErrTimetableNotFound    = errors.New("timetable not found")
	ErrThresholdsNotFound   = errors.New("threshold config not found")
	ErrOrderNotFound        = errors.New("payment order not found")
	ErrUnknownPlan          = errors.New("unknown premium plan")
	ErrPaymentNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidSignature     = errors.New("notification signature mismatch")
)
